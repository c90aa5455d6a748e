package auth

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"campsite-service/internal/session"
)

const principalKey = "principal"

// Broker resolves the authenticated principal of a request. A browser
// session binding wins; a bearer token is accepted for API clients. The
// verifier may be nil when no key is configured.
type Broker struct {
	sessions session.Store
	verifier *JWTVerifier
}

func NewBroker(sessions session.Store, verifier *JWTVerifier) *Broker {
	return &Broker{sessions: sessions, verifier: verifier}
}

// CurrentPrincipal returns the principal bound to the request, or false
// when the request is unauthenticated.
func (b *Broker) CurrentPrincipal(ctx context.Context, sid, bearer string) (primitive.ObjectID, bool) {
	if sid != "" {
		if hex, err := b.sessions.Get(ctx, sid, principalKey); err == nil {
			if id, err := primitive.ObjectIDFromHex(hex); err == nil {
				return id, true
			}
		}
	}
	if bearer != "" && b.verifier != nil {
		if hex, err := b.verifier.VerifyToken(bearer); err == nil {
			if id, err := primitive.ObjectIDFromHex(hex); err == nil {
				return id, true
			}
		}
	}
	return primitive.NilObjectID, false
}

// Login binds the principal to the session.
func (b *Broker) Login(ctx context.Context, sid string, principal primitive.ObjectID) error {
	return b.sessions.Set(ctx, sid, principalKey, principal.Hex())
}

// Logout clears the session's principal binding.
func (b *Broker) Logout(ctx context.Context, sid string) error {
	return b.sessions.Clear(ctx, sid, principalKey)
}
