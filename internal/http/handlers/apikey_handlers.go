package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/draftly/domain"
)

// APIKeyHandlers handles encrypted API key HTTP requests
type APIKeyHandlers struct {
	keySvc domain.APIKeyService
}

// NewAPIKeyHandlers creates new API key handlers
func NewAPIKeyHandlers(keySvc domain.APIKeyService) *APIKeyHandlers {
	return &APIKeyHandlers{keySvc: keySvc}
}

// AddKeyRequest represents an API key upload request
type AddKeyRequest struct {
	Provider string `json:"provider" binding:"required,min=2,max=64"`
	Key      string `json:"key" binding:"required,min=8"`
}

func currentUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

// Add handles API key upload. The plaintext key exists only inside this
// request; it is encrypted before it touches storage and never echoed back.
func (h *APIKeyHandlers) Add(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req AddKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key, err := h.keySvc.Add(c.Request.Context(), userID, req.Provider, req.Key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store API key"})
		return
	}

	logAudit(domain.NewAuditEvent(domain.APIKeyAddedEvent, userID))

	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{
			"provider":   key.Provider,
			"is_valid":   key.IsValid,
			"created_at": key.CreatedAt,
		},
	})
}

// List handles listing a user's API keys (metadata only)
func (h *APIKeyHandlers) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	keys, err := h.keySvc.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list API keys"})
		return
	}

	items := make([]gin.H, 0, len(keys))
	for _, key := range keys {
		items = append(items, gin.H{
			"provider":     key.Provider,
			"is_valid":     key.IsValid,
			"last_used_at": key.LastUsedAt,
			"created_at":   key.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"keys": items}})
}

// Reveal handles decrypting a stored API key for the owning user
func (h *APIKeyHandlers) Reveal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	provider := c.Param("provider")

	plaintext, err := h.keySvc.Reveal(c.Request.Context(), userID, provider)
	if err != nil {
		switch err {
		case domain.ErrAPIKeyNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "API key not found"})
		case domain.ErrCipherAuthentication, domain.ErrCipherPayloadMalformed:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Stored key could not be decrypted"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve API key"})
		}
		return
	}

	logAudit(domain.NewAuditEvent(domain.APIKeyRevealedEvent, userID))

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"provider": provider,
			"key":      plaintext,
		},
	})
}

// Delete handles API key deletion
func (h *APIKeyHandlers) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	provider := c.Param("provider")

	if err := h.keySvc.Delete(c.Request.Context(), userID, provider); err != nil {
		if err == domain.ErrAPIKeyNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "API key not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete API key"})
		return
	}

	logAudit(domain.NewAuditEvent(domain.APIKeyDeletedEvent, userID))

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "API key deleted"},
	})
}
