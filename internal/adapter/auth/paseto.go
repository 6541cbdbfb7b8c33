package auth

import (
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/kohai/gamecredit/internal/adapter/config"
	"github.com/kohai/gamecredit/internal/core/domain"
	"github.com/kohai/gamecredit/internal/core/port"
)

const payloadKey = "payload"

type PasetoToken struct {
	parser   *paseto.Parser
	key      *paseto.V4SymmetricKey
	lifetime time.Duration
}

// New uses the hex key from conf, or a random key when none is configured.
func New(conf *config.Auth) (*PasetoToken, error) {
	parser := paseto.NewParser()

	var key paseto.V4SymmetricKey
	if conf != nil && conf.TokenKey != "" {
		k, err := paseto.V4SymmetricKeyFromHex(conf.TokenKey)
		if err != nil {
			return nil, fmt.Errorf("invalid token key: %w", err)
		}
		key = k
	} else {
		key = paseto.NewV4SymmetricKey()
	}

	return &PasetoToken{
		parser:   &parser,
		key:      &key,
		lifetime: 24 * time.Hour,
	}, nil
}

func (p *PasetoToken) CreateToken(payload *port.TokenPayload) (string, error) {
	token := paseto.NewToken()
	now := time.Now()
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(p.lifetime))

	err := token.Set(payloadKey, payload)
	if err != nil {
		return "", domain.ErrTokenCreation
	}

	return token.V4Encrypt(*p.key, nil), nil
}

func (p *PasetoToken) VerifyToken(token string) (*port.TokenPayload, error) {
	parsedToken, err := p.parser.ParseV4Local(*p.key, token, nil)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	payload := port.TokenPayload{}
	err = parsedToken.Get(payloadKey, &payload)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	return &payload, nil
}
