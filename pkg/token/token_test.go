package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIssueVerify(t *testing.T) {
	issuer := NewIssuer("secret-one")

	t.Run("Round trip preserves account and kind", func(t *testing.T) {
		tok, err := issuer.Issue(42, KindCompany)
		assert.NoError(t, err)

		claims, err := issuer.Verify(tok)
		assert.NoError(t, err)
		assert.Equal(t, int64(42), claims.AccountID)
		assert.Equal(t, KindCompany, claims.Kind)
	})

	t.Run("Token signed with a different secret fails", func(t *testing.T) {
		tok, err := NewIssuer("secret-two").Issue(42, KindUser)
		assert.NoError(t, err)

		_, err = issuer.Verify(tok)
		assert.Error(t, err)
	})

	t.Run("Garbage token fails", func(t *testing.T) {
		_, err := issuer.Verify("not.a.token")
		assert.Error(t, err)
	})
}
