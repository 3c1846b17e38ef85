package provider

// Session is the caller-owned capability the engine borrows for the
// duration of one resolution. The engine never constructs sessions and
// never caches tokens; LoadKS may perform its own network round trip and
// must be safe for concurrent use.
type Session interface {
	// BaseURL returns the server base URL, without the /api_v3 suffix.
	BaseURL() string
	// PartnerID returns the partner/tenant identifier.
	PartnerID() int64
	// LoadKS asynchronously yields a non-empty token or an empty string,
	// never both a token and an error.
	LoadKS(completion func(ks string, err error))
}

// StaticSession is a Session with a fixed token. An empty KS selects the
// anonymous path.
type StaticSession struct {
	ServerURL string
	Partner   int64
	KS        string
}

func (s *StaticSession) BaseURL() string  { return s.ServerURL }
func (s *StaticSession) PartnerID() int64 { return s.Partner }

func (s *StaticSession) LoadKS(completion func(ks string, err error)) {
	completion(s.KS, nil)
}
