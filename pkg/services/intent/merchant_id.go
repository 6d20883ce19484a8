package intent

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoMerchantID means the question carried no recognizable merchant id.
// The pipeline cannot proceed without one.
var ErrNoMerchantID = errors.New("no merchant id in question")

var (
	labeledIDPattern = regexp.MustCompile(`(?i)가게\s*ID\s*[:：]\s*([A-Za-z0-9]+)`)
	bareIDPattern    = regexp.MustCompile(`\b[A-Z]{2,4}[0-9]{4,8}\b`)
)

// ExtractMerchantID pulls the merchant id out of a free-text question.
// The labeled form, 가게 ID: ABC12345, wins over a bare id-shaped token.
func ExtractMerchantID(question string) (string, error) {
	if m := labeledIDPattern.FindStringSubmatch(question); m != nil {
		return strings.ToUpper(m[1]), nil
	}
	if m := bareIDPattern.FindString(question); m != "" {
		return m, nil
	}
	return "", ErrNoMerchantID
}
