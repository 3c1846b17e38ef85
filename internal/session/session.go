// Package session turns a caller-owned session capability into a token plan:
// either a literal token usable as-is, or an anonymous fallback in which the
// batch opens with a login operation and every dependent parameter becomes a
// forward reference into its result.
package session

import "github.com/streamkit/ovp/internal/ovpapi"

// TokenLoader is the part of the session capability this package needs.
type TokenLoader interface {
	LoadKS(completion func(ks string, err error))
}

// TokenPlan describes how one batch authenticates.
type TokenPlan struct {
	literal string
}

// Usable reports whether a literal token is available.
func (p TokenPlan) Usable() bool { return p.literal != "" }

// Anonymous reports whether the batch must open with an anonymous login.
func (p TokenPlan) Anonymous() bool { return !p.Usable() }

// LiteralKS returns the literal token, or "" on the anonymous path.
func (p TokenPlan) LiteralKS() string { return p.literal }

// KS returns the value to place in each operation's token parameter: the
// literal token, or the forward reference into the anonymous login result.
func (p TokenPlan) KS() any {
	if p.Usable() {
		return p.literal
	}
	return ovpapi.AnonymousKS()
}

// EntryResultRef returns the forward reference to the first entry id of the
// entry lookup result. The lookup sits at position 1, or at position 2 when
// the anonymous login occupies position 1.
func (p TokenPlan) EntryResultRef() ovpapi.ForwardRef {
	index := 1
	if p.Anonymous() {
		index = 2
	}
	return ovpapi.Result(index, "objects:0:id")
}

// Resolve obtains a token plan from the session. A LoadKS failure is
// deliberately treated the same as an absent token: the resolution proceeds
// anonymously rather than failing. Callers relying on real errors must
// surface them from their own session implementation.
func Resolve(loader TokenLoader, completion func(TokenPlan)) {
	loader.LoadKS(func(ks string, err error) {
		if err != nil || ks == "" {
			completion(TokenPlan{})
			return
		}
		completion(TokenPlan{literal: ks})
	})
}
