package common

import (
	"crypto/sha256"
	"encoding/hex"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"golang.org/x/crypto/pbkdf2"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var snowflakeNode *snowflake.Node

func init() {
	rand.Seed(time.Now().UnixNano())
	var err error
	snowflakeNode, err = snowflake.NewNode(int64(rand.Intn(1024)))
	if err != nil {
		panic(err)
	}
}

// UUIDint64 returns a snowflake-based unique id
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}

// OrderToken renders a snowflake id in the customer-facing order number
// format: prefix followed by the id in upper-case base36.
func OrderToken(prefix string) string {
	return prefix + strings.ToUpper(strconv.FormatInt(snowflakeNode.Generate().Int64(), 36))
}

// GetSecretSalt returns the server secret used to salt credential hashes
func GetSecretSalt() string {
	if s := os.Getenv("LAHORI_SECRET"); s != "" {
		return s
	}
	return "lahorisamosa-secret"
}

// Sha256HashWithSalt computes a salted sha256 hex digest
func Sha256HashWithSalt(s, salt string) string {
	sum := sha256.Sum256([]byte(s + salt))
	return hex.EncodeToString(sum[:])
}

// Pbkdf2Hash derives a hex-encoded pbkdf2-sha256 hash, used for the admin PIN
func Pbkdf2Hash(s, salt string) string {
	return hex.EncodeToString(pbkdf2.Key([]byte(s), []byte(salt), 4096, 32, sha256.New))
}
