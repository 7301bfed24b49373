package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jxdata/portal/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVisitorService() *VisitorService {
	return NewVisitorService(&config.Config{
		VisitorSecret: "test-secret",
		VisitorTTL:    time.Hour,
	})
}

func TestVisitorService_IssueAndValidate(t *testing.T) {
	svc := newTestVisitorService()

	token, visitorID, err := svc.Issue()
	require.NoError(t, err)
	_, err = uuid.Parse(visitorID)
	require.NoError(t, err)

	got, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, visitorID, got)
}

func TestVisitorService_Rejects(t *testing.T) {
	svc := newTestVisitorService()
	token, _, err := svc.Issue()
	require.NoError(t, err)

	other := NewVisitorService(&config.Config{VisitorSecret: "other-secret", VisitorTTL: time.Hour})

	expired := newTestVisitorService()
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, _, err := expired.Issue()
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, VisitorClaims{
		RegisteredClaims: jwt.RegisteredClaims{ID: uuid.New().String(), Issuer: visitorIssuer},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, VisitorClaims{
		RegisteredClaims: jwt.RegisteredClaims{ID: "not-a-uuid", Issuer: visitorIssuer},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		svc   *VisitorService
		token string
	}{
		{name: "garbage", svc: svc, token: "abc.def.ghi"},
		{name: "wrong secret", svc: other, token: token},
		{name: "expired", svc: svc, token: expiredToken},
		{name: "unsigned", svc: svc, token: noneToken},
		{name: "non uuid id", svc: svc, token: badID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.svc.Validate(tt.token)
			assert.Error(t, err)
		})
	}
}
