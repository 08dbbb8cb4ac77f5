package token

import (
	"crypto/subtle"
	"encoding/base32"
	"strings"

	"golang.org/x/crypto/blake2b"
)

const (
	codeBytes = 10 // 16 символов base32
	codeGroup = 4
)

// RedemptionCode короткий код для ваучера: ключевой blake2b от ID спина.
// Код воспроизводим, поэтому хранить его отдельно не обязательно
func RedemptionCode(spinID string, secretKey []byte) (string, error) {
	key := blake2b.Sum256(secretKey)
	h, err := blake2b.New(codeBytes, key[:])
	if err != nil {
		return "", err
	}
	h.Write([]byte(spinID))

	raw := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(h.Sum(nil))

	var b strings.Builder
	for i, r := range raw {
		if i > 0 && i%codeGroup == 0 {
			b.WriteByte('-')
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

func VerifyRedemptionCode(code, spinID string, secretKey []byte) bool {
	expected, err := RedemptionCode(spinID, secretKey)
	if err != nil {
		return false
	}
	normalized := strings.ToUpper(strings.TrimSpace(code))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(normalized)) == 1
}
