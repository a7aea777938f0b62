package export

import (
	"sync"

	"github.com/unidoc/unipdf/v3/common/license"
)

var licenseOnce sync.Once

// InitLicense registers the unidoc metered license key. unipdf refuses to
// write documents until a key is registered, so this must be called before
// the first ExportPDF. Repeat calls are no-ops.
func InitLicense(apiKey string) error {
	var err error
	licenseOnce.Do(func() {
		err = license.SetMeteredKey(apiKey)
	})
	return err
}
