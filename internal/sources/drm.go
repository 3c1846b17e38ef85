package sources

import (
	"github.com/streamkit/ovp/media"
	"github.com/streamkit/ovp/internal/ovpapi"
)

// NormalizeDRM converts raw protection descriptors into normalized
// parameter sets. FairPlay requires both a license URL and a certificate;
// a FairPlay descriptor missing either is dropped. Other schemes pass
// through with whatever license URL they carry, including unknown schemes.
func NormalizeDRM(descriptors []*ovpapi.DRM) []media.DRMParams {
	var out []media.DRMParams
	for _, d := range descriptors {
		if d == nil || d.Scheme == "" {
			continue
		}
		scheme := ConvertScheme(d.Scheme)
		if scheme == media.SchemeFairPlay {
			if d.LicenseURL == "" || d.Certificate == "" {
				continue
			}
			out = append(out, media.DRMParams{
				Scheme:      scheme,
				LicenseURL:  d.LicenseURL,
				Certificate: d.Certificate,
			})
			continue
		}
		out = append(out, media.DRMParams{
			Scheme:     scheme,
			LicenseURL: d.LicenseURL,
		})
	}
	return out
}
