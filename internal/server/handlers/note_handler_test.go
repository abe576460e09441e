package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lindqvistmarin/slipway/internal/domain/models"
	"github.com/lindqvistmarin/slipway/internal/service/notes"
)

type fakeNotesRepo struct {
	boat  *models.Boat
	notes map[primitive.ObjectID]*models.CustomerNote
}

func newFakeNotesRepo() *fakeNotesRepo {
	return &fakeNotesRepo{
		boat:  &models.Boat{ID: primitive.NewObjectID(), PublicID: "demo-public-id", Name: "Albin Vega"},
		notes: map[primitive.ObjectID]*models.CustomerNote{},
	}
}

func (f *fakeNotesRepo) GetBoatByPublicID(ctx context.Context, publicID string) (*models.Boat, error) {
	if f.boat.PublicID == publicID {
		return f.boat, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeNotesRepo) CreateNote(ctx context.Context, note *models.CustomerNote) error {
	note.ID = primitive.NewObjectID()
	f.notes[note.ID] = note
	return nil
}

func (f *fakeNotesRepo) SetNoteResolved(ctx context.Context, id primitive.ObjectID, resolved bool) (*models.CustomerNote, error) {
	note, ok := f.notes[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	note.IsResolved = resolved
	return note, nil
}

func (f *fakeNotesRepo) ListNotes(ctx context.Context, onlyUnresolved bool) ([]models.CustomerNote, error) {
	out := []models.CustomerNote{}
	for _, note := range f.notes {
		if onlyUnresolved && note.IsResolved {
			continue
		}
		out = append(out, *note)
	}
	return out, nil
}

func newNotesRouter(repo *fakeNotesRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := notes.NewService(repo, nil, nil)
	h := NewNoteHandler(svc, nil)

	r := gin.New()
	r.GET("/api/notes", h.List)
	r.PATCH("/api/notes/:id/resolved", h.ToggleResolved)
	return r
}

func TestToggleResolvedEndpoint(t *testing.T) {
	repo := newFakeNotesRepo()
	router := newNotesRouter(repo)

	noteID := primitive.NewObjectID()
	repo.notes[noteID] = &models.CustomerNote{ID: noteID, BoatID: repo.boat.ID, Message: "Trasig lanterna"}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/notes/"+noteID.Hex()+"/resolved", strings.NewReader(`{"resolved":true}`))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, repo.notes[noteID].IsResolved)
}

func TestToggleResolvedEndpointErrors(t *testing.T) {
	repo := newFakeNotesRepo()
	router := newNotesRouter(repo)

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{name: "missing body field", path: "/api/notes/" + primitive.NewObjectID().Hex() + "/resolved", body: `{}`, want: http.StatusBadRequest},
		{name: "malformed id", path: "/api/notes/garbage/resolved", body: `{"resolved":true}`, want: http.StatusBadRequest},
		{name: "unknown note", path: "/api/notes/" + primitive.NewObjectID().Hex() + "/resolved", body: `{"resolved":true}`, want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPatch, tt.path, strings.NewReader(tt.body))
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestListNotesEndpoint(t *testing.T) {
	repo := newFakeNotesRepo()
	router := newNotesRouter(repo)

	openID := primitive.NewObjectID()
	doneID := primitive.NewObjectID()
	repo.notes[openID] = &models.CustomerNote{ID: openID, BoatID: repo.boat.ID, Message: "Trasig lanterna"}
	repo.notes[doneID] = &models.CustomerNote{ID: doneID, BoatID: repo.boat.ID, Message: "Vaxa skrovet", IsResolved: true}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/notes?unresolved=true", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Trasig lanterna")
	assert.NotContains(t, rec.Body.String(), "Vaxa skrovet")
}
