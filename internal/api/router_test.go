package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"inkstudio/internal/api/controllers"
	"inkstudio/internal/infra/infratest"
	"inkstudio/internal/models/request_models"
	"inkstudio/internal/models/response_models"
	"inkstudio/internal/realtime"
	"inkstudio/internal/repositories"
	"inkstudio/internal/services"
	"inkstudio/internal/storage"
	mem "inkstudio/pkg/memcache"
	"inkstudio/pkg/utils"
)

type envelope struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	TraceID string          `json:"trace_id"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	router *gin.Engine
	hub    *realtime.Hub
	seed   services.SeedServiceInterface
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()

	db := infratest.NewTestDB(t)
	root := t.TempDir()
	store, err := storage.NewDiskStore(root, "/uploads")
	require.NoError(t, err)

	hub := realtime.NewHub(log)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)

	clock := utils.SteppingClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), time.Second)
	studios := repositories.NewStudioRepository(db)
	artists := repositories.NewArtistRepository(db)
	clients := repositories.NewClientRepository(db)
	appts := repositories.NewAppointmentRepository(db)
	images := repositories.NewImageRepository(db)
	healingRepo := repositories.NewHealingRepository(db)

	identity := services.NewIdentityService(studios, artists, clients, mem.NewTTLCache[response_models.StudioTheme](), time.Minute, log)
	relationship := services.NewRelationshipService(clients, artists, appts, log)
	assets := services.NewAssetService(services.AssetServiceParams{
		Images: images, Clients: clients, Artists: artists, Appointments: appts,
		Healing: healingRepo, Store: store, Publisher: hub, Clock: clock, MaxBytes: 1 << 20, Log: log,
	})
	healing := services.NewHealingService(services.HealingServiceParams{
		Healing: healingRepo, Clients: clients, Artists: artists, Store: store,
		Publisher: hub, Clock: clock, MaxBytes: 1 << 20, Log: log,
	})
	overview := services.NewOverviewService(repositories.NewOverviewRepository(db), studios, artists, clients, healingRepo, store)

	router := NewRouter(log, RouterOptions{CORSOrigins: []string{"*"}, UploadRoot: root}, Controllers{
		Health: controllers.NewHealthController(db),
		Auth:   controllers.NewAuthController(identity),
		Studio: controllers.NewStudioController(identity, relationship, overview),
		Client: controllers.NewClientController(identity, assets, healing, hub, 1<<20),
		Artist: controllers.NewArtistController(identity, relationship, assets, healing, hub, 1<<20),
	})

	seed := services.NewSeedService(repositories.NewSeedRepository(db), clock, log)
	_, err = seed.Seed(context.Background(), request_models.SeedData{
		Studios: []request_models.StudioInput{
			{ID: "studioA", Name: "Alpha", Manager: &request_models.ManagerInput{User: "boss", Password: "secret"}, Theme: request_models.StudioThemeInput{PrimaryColor: "#123"}},
			{ID: "studioB", Name: "Beta"},
		},
		Artists: []request_models.SeedArtist{
			{ID: "artistA", Name: "Ada", Password: "devpass", StudioID: "studioA"},
			{ID: "artistB", Name: "Bo", Password: "devpass", StudioID: "studioB"},
		},
		Clients: []request_models.SeedClient{
			{ID: "clientA", Name: "Cleo", Password: "devpass", StudioID: "studioA", ArtistID: "artistA"},
		},
	})
	require.NoError(t, err)

	return &testServer{router: router, hub: hub, seed: seed}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.serve(t, req)
}

func (s *testServer) serve(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func dataURL(payload string) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte(payload))
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w, env := s.do(t, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, env.TraceID)
	assert.Equal(t, env.TraceID, w.Header().Get("X-Trace-ID"))
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(t, http.MethodPost, "/api/register", gin.H{"clientId": "newbie", "password": "pw", "studioId": "studioA"})
	require.Equal(t, http.StatusOK, w.Code)
	w, env := s.do(t, http.MethodPost, "/api/register", gin.H{"clientId": "newbie", "password": "other"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "error", env.Status)

	w, _ = s.do(t, http.MethodPost, "/api/artist/register", gin.H{"artistId": "fresh", "password": "pw"})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/login", gin.H{"userId": "newbie", "password": "pw", "role": "client"})
	assert.Equal(t, http.StatusOK, w.Code)
	w, env = s.do(t, http.MethodPost, "/api/login", gin.H{"userId": "newbie", "password": "nope", "role": "client"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid credentials", env.Message)
	w, env2 := s.do(t, http.MethodPost, "/api/login", gin.H{"userId": "ghost", "password": "pw", "role": "client"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, env.Message, env2.Message)

	w, _ = s.do(t, http.MethodPost, "/api/login", gin.H{"userId": "fresh", "password": "pw", "role": "manager"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = s.do(t, http.MethodPost, "/api/login", gin.H{"userId": "fresh"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStudioRoutes(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodGet, "/api/studios", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var studios []response_models.StudioSummary
	require.NoError(t, json.Unmarshal(env.Data, &studios))
	assert.Len(t, studios, 2)

	w, env = s.do(t, http.MethodGet, "/api/studio/studioA/config", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var theme response_models.StudioTheme
	require.NoError(t, json.Unmarshal(env.Data, &theme))
	assert.Equal(t, "#123", theme.PrimaryColor)

	w, _ = s.do(t, http.MethodGet, "/api/studio/ghost/config", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/studio/studioA/manager/login", gin.H{"user": "boss", "password": "secret"})
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(t, http.MethodPost, "/api/studio/studioA/manager/login", gin.H{"user": "boss", "password": "guess"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/studio/studioA/assign", gin.H{"clientId": "clientA", "artistId": "artistB"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = s.do(t, http.MethodPost, "/api/studio/studioA/assign", gin.H{"clientId": "ghost", "artistId": "artistA"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = s.do(t, http.MethodPost, "/api/studio/studioA/assign", gin.H{"clientId": "clientA", "artistId": "artistA"})
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(t, http.MethodGet, "/api/studio/studioA/overview", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ov response_models.StudioOverview
	require.NoError(t, json.Unmarshal(env.Data, &ov))
	assert.EqualValues(t, 1, ov.Counts.Artists)
	assert.EqualValues(t, 1, ov.Counts.Clients)

	w, env = s.do(t, http.MethodGet, "/api/admin/artists", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var artists []response_models.ArtistSummary
	require.NoError(t, json.Unmarshal(env.Data, &artists))
	assert.Len(t, artists, 2)

	w, env = s.do(t, http.MethodGet, "/api/studio/studioB/clients", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var clients []response_models.ClientSummary
	require.NoError(t, json.Unmarshal(env.Data, &clients))
	assert.Empty(t, clients)
}

func TestJSONUploadAndGallery(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodPost, "/api/client/clientA/ideas", gin.H{
		"images":  []gin.H{{"name": "a.png", "data": dataURL("one")}, {"name": "b.png", "data": dataURL("two")}},
		"comment": "sleeve",
	})
	require.Equal(t, http.StatusOK, w.Code, env.Message)
	var result response_models.UploadResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 2, result.Uploaded)

	w, env = s.do(t, http.MethodGet, "/api/client/clientA/images/ideas", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ideas []response_models.ImageResponse
	require.NoError(t, json.Unmarshal(env.Data, &ideas))
	require.Len(t, ideas, 2)
	assert.Equal(t, "b.png", ideas[0].Filename)

	file := httptest.NewRecorder()
	s.router.ServeHTTP(file, httptest.NewRequest(http.MethodGet, ideas[0].URL, nil))
	assert.Equal(t, http.StatusOK, file.Code)
	assert.Equal(t, "two", file.Body.String())

	w, _ = s.do(t, http.MethodGet, "/api/client/clientA/images/sketch", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/client/clientA/ideas", gin.H{"images": []gin.H{{"data": "not-a-data-url"}}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = s.do(t, http.MethodPost, "/api/client/clientA/ideas", gin.H{"images": []gin.H{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = s.do(t, http.MethodPost, "/api/client/ghost/ideas", gin.H{"images": []gin.H{{"data": dataURL("x")}}})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMultipartArtistUpload(t *testing.T) {
	s := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("clientId", "clientA"))
	part, err := mw.CreateFormFile("images", "final.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/artist/artistA/upload/final", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w, env := s.serve(t, req)
	require.Equal(t, http.StatusOK, w.Code, env.Message)

	w, env = s.do(t, http.MethodGet, "/api/client/clientA", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var details response_models.ClientDetails
	require.NoError(t, json.Unmarshal(env.Data, &details))
	require.NotNil(t, details.FinalTemplate)
	assert.Equal(t, "final.jpg", details.FinalTemplate.Filename)
	assert.True(t, strings.HasPrefix(details.FinalTemplate.Path, "final/"))

	w, _ = s.do(t, http.MethodPost, "/api/artist/artistB/upload/templates", gin.H{
		"clientId": "clientA", "images": []gin.H{{"data": dataURL("t")}},
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = s.do(t, http.MethodPost, "/api/artist/artistA/upload/idea", gin.H{
		"clientId": "clientA", "images": []gin.H{{"data": dataURL("t")}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWannadoRoutes(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(t, http.MethodPost, "/api/artist/artistA/wannado", gin.H{"images": []gin.H{{"data": dataURL("flash")}}})
	require.Equal(t, http.StatusOK, w.Code)

	w, env := s.do(t, http.MethodGet, "/api/client/clientA/wannado", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var images []response_models.ImageResponse
	require.NoError(t, json.Unmarshal(env.Data, &images))
	require.Len(t, images, 1)
	assert.Nil(t, images[0].ClientID)
}

func TestHealingFlowWithStream(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.router)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/api/artist/artistA/healing/stream", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return s.hub.Subscribers(realtime.ArtistTopic("artistA")) == 1 }, time.Second, 10*time.Millisecond)

	w, env := s.do(t, http.MethodPost, "/api/client/clientA/healing", gin.H{
		"comment": "itchy",
		"images":  []gin.H{{"name": "day1.png", "data": dataURL("skin")}},
	})
	require.Equal(t, http.StatusOK, w.Code, env.Message)
	var entry response_models.HealingEntryResponse
	require.NoError(t, json.Unmarshal(env.Data, &entry))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev realtime.Event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, realtime.EventHealingCreated, ev.Type)

	w, _ = s.do(t, http.MethodPost, "/api/artist/artistA/healing/"+entry.ID+"/responses", gin.H{"clientId": "clientA", "comment": "normal, keep moisturizing"})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(t, http.MethodPost, "/api/artist/artistA/healing/"+entry.ID+"/responses", gin.H{"clientId": "someoneElse", "comment": "?"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = s.do(t, http.MethodGet, "/api/artist/artistA/healing", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var entries []response_models.HealingEntryResponse
	require.NoError(t, json.Unmarshal(env.Data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "Cleo", entries[0].ClientName)
	assert.Len(t, entries[0].Responses, 1)

	resp, err := http.Get(srv.URL + "/api/artist/ghost/healing/stream")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestErrorMappingCoversSentinels(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := map[error]int{
		utils.ErrTenantMismatch:     http.StatusForbidden,
		utils.ErrInvalidImageKind:   http.StatusBadRequest,
		utils.ErrInvalidCredentials: http.StatusUnauthorized,
		utils.ErrNotFound:           http.StatusNotFound,
		utils.ErrConflict:           http.StatusConflict,
		utils.ErrUploadFailed:       http.StatusInternalServerError,
		utils.ErrDatabaseError:      http.StatusInternalServerError,
	}
	for err, code := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		utils.HandleServiceError(c, err)
		assert.Equal(t, code, w.Code, err.Error())
	}
}
