package sources

import (
	"net/url"
	"strconv"
	"strings"
)

// FlavorURL synthesizes the playManifest URL for a flavor-based source:
//
//	<base>/p/<partner>/sp/<partner*100>/playManifest/entryId/<entry>
//	  /protocol/<protocol>/format/<formatTag>/flavorIds/<id,id,...>
//	  [/uiConfId/<id>] [/ks/<token>] /a.<ext>
//
// Pure string composition; no network call.
func FlavorURL(baseURL string, partnerID int64, entryID, formatTag string, flavorIDs []string, protocol string, uiConfID int64, ks, fileExtension string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(baseURL, "/"))
	b.WriteString("/p/")
	b.WriteString(strconv.FormatInt(partnerID, 10))
	b.WriteString("/sp/")
	b.WriteString(strconv.FormatInt(partnerID*100, 10))
	b.WriteString("/playManifest/entryId/")
	b.WriteString(url.PathEscape(entryID))
	b.WriteString("/protocol/")
	b.WriteString(url.PathEscape(protocol))
	b.WriteString("/format/")
	b.WriteString(url.PathEscape(formatTag))
	b.WriteString("/flavorIds/")
	b.WriteString(strings.Join(flavorIDs, ","))
	if uiConfID > 0 {
		b.WriteString("/uiConfId/")
		b.WriteString(strconv.FormatInt(uiConfID, 10))
	}
	if ks != "" {
		b.WriteString("/ks/")
		b.WriteString(url.PathEscape(ks))
	}
	b.WriteString("/a.")
	b.WriteString(fileExtension)
	return b.String()
}

// InjectKS threads the session token into a ready-made URL. When the URL
// has no query string the token becomes a "/ks/<token>/" path segment just
// before the final path component; otherwise it is appended as a "ks" query
// parameter. Tokenless or unparseable URLs pass through unchanged.
func InjectKS(rawURL, ks string) string {
	if ks == "" || rawURL == "" {
		return rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	if u.RawQuery != "" {
		return rawURL + "&ks=" + url.QueryEscape(ks)
	}
	slash := strings.LastIndex(u.Path, "/")
	if slash < 0 {
		return rawURL + "?ks=" + url.QueryEscape(ks)
	}
	u.Path = u.Path[:slash] + "/ks/" + ks + u.Path[slash:]
	return u.String()
}
