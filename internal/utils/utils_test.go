package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/models"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", hash)
	assert.True(t, VerifyPassword("admin123", hash))
	assert.False(t, VerifyPassword("wrong", hash))
}

func TestGenerateJWTClaims(t *testing.T) {
	tokenString, err := GenerateJWT(models.User{ID: 42, Email: "asha@sweetshop.com", Role: models.RoleAdmin})
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return JWTSecret(), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(42), claims["user_id"])
	assert.Equal(t, "asha@sweetshop.com", claims["email"])
	assert.Equal(t, "admin", claims["role"])
	assert.Contains(t, token.Method.Alg(), "HS256")
}

func TestOrderConfirmationHTML(t *testing.T) {
	html := orderConfirmationHTML(models.Order{
		ID:    "order-1",
		Total: 25.98,
		Items: []models.OrderItem{{SweetName: "Gulab Jamun", Quantity: 2, Price: 12.99}},
	})
	assert.Contains(t, html, "order-1")
	assert.Contains(t, html, "Gulab Jamun")
	assert.Contains(t, html, "$25.98")
}

func TestSendPurchaseConfirmationSkipsWithoutSMTP(t *testing.T) {
	t.Setenv("SMTP_HOST", "")
	err := SendPurchaseConfirmation("someone@example.com", models.Order{ID: "x"})
	assert.NoError(t, err)
}
