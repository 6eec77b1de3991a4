package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Elviskarani/carsawa-frontend-elvis/internal/apiclient"
)

// asAPIError unwraps err into an *apiclient.APIError when one is present.
func asAPIError(err error, target **apiclient.APIError) bool {
	return errors.As(err, target)
}

// respondUpstreamError maps an upstream API failure onto this gateway's
// error taxonomy: 404 for missing resources, 401 for rejected tokens, and a
// generic retryable 502 for transport or unexpected upstream failures.
// notFoundMsg names the missing entity for the 404 body.
func respondUpstreamError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case apiclient.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	case apiclient.IsUnauthorized(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load data, please try again"})
	}
}
