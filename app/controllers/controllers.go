// Package controllers holds the HTTP handlers. Each controller depends on a
// small store interface satisfied by the matching repository, so handlers can
// be exercised in tests without a live MongoDB.
package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shashiranjanraj/bistro/pkg/response"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// objectIDParam parses the named chi URL parameter as an ObjectID hex.
// Writes a 400 and returns false when the value is malformed.
func objectIDParam(w http.ResponseWriter, r *http.Request, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}
