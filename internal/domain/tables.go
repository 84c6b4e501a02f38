package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	&SysOpr{},
	// Point of sale
	&Product{},
	&Sale{},
	&SaleItem{},
}
