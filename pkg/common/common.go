package common

import (
	"crypto/sha256"
	"fmt"
	"os"
	"strings"

	"github.com/bwmarrin/snowflake"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var snowflakeNode *snowflake.Node

func init() {
	var err error
	snowflakeNode, err = snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
}

// UUIDint64 returns a cluster-safe 64-bit identifier.
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}

// UUID returns the string form of a snowflake identifier.
func UUID() string {
	return snowflakeNode.Generate().String()
}

// Sha256Hash returns the hex encoded sha256 of src.
func Sha256Hash(src string) string {
	h := sha256.New()
	h.Write([]byte(src))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// GetSecretSalt reads an optional salt from the environment.
func GetSecretSalt() string {
	return os.Getenv("ALEENPOS_SECRET_SALT")
}

// IsEmptyOrNA treats "" and "N/A" as unset.
func IsEmptyOrNA(val string) bool {
	v := strings.TrimSpace(val)
	return v == "" || strings.EqualFold(v, "N/A")
}

// FileExists checks for a regular file at path.
func FileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

// DigitsOnly strips everything but 0-9 from a phone number.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
