package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/oksasatya/budget-ledger-api/internal/interface/middleware"
	"github.com/oksasatya/budget-ledger-api/pkg/apperror"
	"github.com/oksasatya/budget-ledger-api/pkg/response"
)

// actingUser reads the id RequireAuth stored. Routes without the middleware answer 401.
func actingUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.Unauthorized())
		return uuid.Nil, false
	}
	return id, true
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, invalidUUID("id"))
		return uuid.Nil, false
	}
	return id, true
}

// queryID returns (id, present, ok). ok is false when a response was already written.
func queryID(c *gin.Context, key string) (uuid.UUID, bool, bool) {
	raw, present := c.GetQuery(key)
	if !present {
		return uuid.Nil, false, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		response.Error(c, invalidUUID(key))
		return uuid.Nil, true, false
	}
	return id, true, true
}

func parseUUIDPtr(field string, raw *string) (*uuid.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, invalidUUID(field)
	}
	return &id, nil
}

func invalidUUID(field string) error {
	return apperror.Validation(map[string][]string{field: {field + " must be a valid UUID"}})
}
