// Package httpkit provides HTTP utilities including identity abstraction.
package httpkit

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity represents the authenticated agent's identity.
// This interface abstracts identity extraction from the web framework,
// allowing handlers to access agent information without depending on Gin.
type Identity interface {
	// AgentID returns the authenticated agent's ID.
	AgentID() uuid.UUID
	// Name returns the agent's display name, if the token carried one.
	Name() string
	// IsAuthenticated returns true if the agent is authenticated.
	IsAuthenticated() bool
}

// identity is the concrete implementation of Identity.
type identity struct {
	agentID       uuid.UUID
	name          string
	authenticated bool
}

func (i *identity) AgentID() uuid.UUID {
	return i.agentID
}

func (i *identity) Name() string {
	return i.name
}

func (i *identity) IsAuthenticated() bool {
	return i.authenticated
}

// GetIdentity extracts the Identity from a Gin context.
// Returns an unauthenticated identity if agent info is not present.
func GetIdentity(c *gin.Context) Identity {
	agentID, ok := c.Get(ContextAgentIDKey)
	if !ok {
		return &identity{authenticated: false}
	}

	id, ok := agentID.(uuid.UUID)
	if !ok {
		return &identity{authenticated: false}
	}

	name := c.GetString(ContextAgentNameKey)

	return &identity{
		agentID:       id,
		name:          name,
		authenticated: true,
	}
}

// MustGetIdentity extracts the Identity from a Gin context.
// If the agent is not authenticated, it aborts with 401 Unauthorized and returns nil.
func MustGetIdentity(c *gin.Context) Identity {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil
	}
	return id
}
