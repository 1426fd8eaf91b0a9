package delayvault

import (
	"regexp"

	"github.com/iov-one/delayvault/errors"
)

var isAsset = regexp.MustCompile(`^[A-Z][A-Z0-9]{2,15}$`).MatchString

// ValidateAsset returns an error if given string is not a valid asset
// ticker. A ticker is an upper case letter followed by 2 to 15 upper case
// letters or digits.
func ValidateAsset(asset string) error {
	if !isAsset(asset) {
		return errors.ErrInput.Newf("asset %q", asset)
	}
	return nil
}
