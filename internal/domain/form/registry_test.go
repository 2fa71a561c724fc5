package form

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadform/internal/domain/lead"
	"leadform/internal/domain/notification"
	"leadform/internal/domain/reference"
	"leadform/internal/pkg/logger"
)

func newTestRegistry(sub Submitter, hub *notification.Hub) *Registry {
	loader := reference.NewLoader(reference.NewStaticSource(), logger.Nop())
	return NewRegistry(sub, loader, hub, 5*time.Second, logger.Nop())
}

func TestEntitiesFor(t *testing.T) {
	assert.Equal(t, []reference.Entity{reference.EntityPais, reference.EntityCarrera}, EntitiesFor(lead.VariantCareer))
	assert.Len(t, EntitiesFor(lead.VariantProduct), 4)
}

func TestRegistry_OpenMountsReferences(t *testing.T) {
	hub := notification.NewHub(nil, logger.Nop())
	defer hub.Close()
	reg := newTestRegistry(newFakeSubmitter(lead.VariantProduct), hub)

	ctx, cancel := context.WithCancel(context.Background())
	form := reg.Open(ctx)
	cancel()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), time.Second)
	defer waitCancel()
	states := form.References().Wait(waitCtx)

	require.Len(t, states, 4)
	for _, s := range states {
		assert.False(t, s.IsLoading)
		assert.Empty(t, s.Error)
		assert.NotEmpty(t, s.Data)
	}

	got, err := reg.Get(form.ID())
	require.NoError(t, err)
	assert.Same(t, form, got)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_CloseNotifiesAndForgets(t *testing.T) {
	hub := notification.NewHub(nil, logger.Nop())
	defer hub.Close()
	reg := newTestRegistry(newFakeSubmitter(lead.VariantCareer), hub)

	form := reg.Open(context.Background())
	ch, cancel := hub.Subscribe(form.ID(), 4)
	defer cancel()

	require.NoError(t, reg.Close(form.ID()))

	msg := <-ch
	assert.Equal(t, notification.TypeClosed, msg.Type)
	_, open := <-ch
	assert.False(t, open)

	_, err := reg.Get(form.ID())
	assert.ErrorIs(t, err, ErrFormNotFound)
	assert.ErrorIs(t, reg.Close(form.ID()), ErrFormNotFound)
	assert.Equal(t, 0, reg.Len())
}

func TestRegistry_CloseIdle(t *testing.T) {
	hub := notification.NewHub(nil, logger.Nop())
	defer hub.Close()
	reg := newTestRegistry(newFakeSubmitter(lead.VariantCareer), hub)
	clk := &clock{t: time.Now()}
	reg.now = clk.Now

	stale := reg.Open(context.Background())
	clk.Advance(time.Hour)
	fresh := reg.Open(context.Background())

	assert.Equal(t, 1, reg.CloseIdle(30*time.Minute))

	_, err := reg.Get(stale.ID())
	assert.ErrorIs(t, err, ErrFormNotFound)
	_, err = reg.Get(fresh.ID())
	assert.NoError(t, err)
}

func setupFormRouter(t *testing.T, sub Submitter) (*gin.Engine, *Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := notification.NewHub(nil, logger.Nop())
	t.Cleanup(hub.Close)
	reg := newTestRegistry(sub, hub)
	h := NewHandler(reg, hub)

	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), h)
	RegisterWSRoutes(r.Group("/ws"), h)
	return r, reg
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_FormLifecycle(t *testing.T) {
	r, reg := setupFormRouter(t, newFakeSubmitter(lead.VariantCareer))

	w := doJSON(r, http.MethodPost, "/api/v1/forms", "")
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, 1, reg.Len())

	var id string
	for k := range reg.forms {
		id = k
	}
	base := "/api/v1/forms/" + id

	w = doJSON(r, http.MethodPatch, base, `{"fields":{"nombre":"A"}}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"idle"`)

	w = doJSON(r, http.MethodPost, base+"/submit", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")

	w = doJSON(r, http.MethodPatch, base, `{"fields":{"nombre":"Ana","email":"ana@example.com","telefono":"5512345678","pais":"1","carrera":"2"}}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, base+"/submit", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Lead creado exitosamente")

	w = doJSON(r, http.MethodPatch, base, `{"fields":{"producto":"1"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "UNKNOWN_FIELD")

	w = doJSON(r, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "FORM_NOT_FOUND")
}

func TestHandler_UpstreamFailure(t *testing.T) {
	sub := newFakeSubmitter(lead.VariantCareer)
	sub.err = &lead.TransportError{Err: context.DeadlineExceeded}
	r, reg := setupFormRouter(t, sub)

	form := reg.Open(context.Background())
	fillCareer(t, form)

	w := doJSON(r, http.MethodPost, "/api/v1/forms/"+form.ID()+"/submit", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "UPSTREAM_UNAVAILABLE")
	assert.Equal(t, "Ana", form.Draft().Nombre)
}

func TestHandler_NotificationsUnknownForm(t *testing.T) {
	r, _ := setupFormRouter(t, newFakeSubmitter(lead.VariantCareer))

	w := doJSON(r, http.MethodGet, "/ws/forms/missing/notifications", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
