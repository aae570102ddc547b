package api

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"linkhub/internal/api/handlers"
	"linkhub/internal/api/middleware"
	"linkhub/internal/engine/analytics"
	"linkhub/internal/engine/appearance"
	"linkhub/internal/engine/links"
	"linkhub/internal/engine/profile"
	"linkhub/internal/engine/social"
	"linkhub/internal/engine/tracking"
	"linkhub/internal/pkg/geoip"
	"linkhub/internal/platform/auth"
	"linkhub/internal/platform/cache"
	"linkhub/internal/platform/config"
	"linkhub/internal/platform/database/dbtest"
	"linkhub/internal/platform/repositories"
)

type testServer struct {
	router *httprouter.Router
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db := dbtest.New(t)
	jwtCfg := config.JWTConfig{Secret: "test-secret", TokenTTL: time.Hour, CookieName: "auth-token"}
	tokenSvc := auth.NewTokenService(jwtCfg)

	users := repositories.NewUserRepository(db)
	linkService := links.NewService(links.NewRepository(db))
	appearanceService := appearance.NewService(appearance.NewRepository(db))
	socialService := social.NewService(social.NewRepository(db))
	profileService := profile.NewService(users, linkService, appearanceService, socialService, cache.NewMemory(), time.Minute)
	trackingService := tracking.NewService(tracking.NewStore(db), nil, profileService)

	limiter := middleware.NewMemoryLimiter()
	t.Cleanup(limiter.Close)

	router := NewRouter(&Dependencies{
		AuthHandler:       handlers.NewAuthHandler(users, tokenSvc, jwtCfg),
		LinkHandler:       handlers.NewLinkHandler(linkService, profileService),
		AnalyticsHandler:  handlers.NewAnalyticsHandler(analytics.NewService(analytics.NewRepository(db))),
		AppearanceHandler: handlers.NewAppearanceHandler(appearanceService, profileService),
		SocialHandler:     handlers.NewSocialHandler(socialService, profileService),
		ProfileHandler:    handlers.NewProfileHandler(profileService, profile.NewAvatarStore(t.TempDir(), 400, 5<<20)),
		PublicHandler:     handlers.NewPublicHandler(profileService, "http://localhost:8080"),
		TrackingHandler:   handlers.NewTrackingHandler(trackingService, geoip.NewHeaderResolver()),
		HealthHandler:     handlers.NewHealthHandler(db, nil, nil),
		AuthMiddleware:    middleware.NewAuthMiddleware(tokenSvc, jwtCfg.CookieName),
		Limiter:           limiter,
		RateLimit:         config.RateLimitConfig{TrackPerMinute: 1000, AuthPerMinute: 1000},
		UploadsDir:        t.TempDir(),
	})

	return &testServer{router: router}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "auth-token", Value: token})
	}

	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
}

// signup registers and logs in a user, returning the session cookie value.
func (s *testServer) signup(t *testing.T, username string) string {
	t.Helper()

	rr := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Test " + username,
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("register %s: %d %s", username, rr.Code, rr.Body.String())
	}

	rr = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    username + "@example.com",
		"password": "secret123",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("login %s: %d %s", username, rr.Code, rr.Body.String())
	}
	for _, c := range rr.Result().Cookies() {
		if c.Name == "auth-token" {
			if !c.HttpOnly || c.SameSite != http.SameSiteLaxMode {
				t.Errorf("cookie flags: HttpOnly=%v SameSite=%v", c.HttpOnly, c.SameSite)
			}
			return c.Value
		}
	}
	t.Fatal("login did not set auth-token cookie")
	return ""
}

func (s *testServer) createLink(t *testing.T, token, title string) string {
	t.Helper()

	rr := s.do(t, http.MethodPost, "/api/links", token, map[string]string{
		"title": title,
		"url":   "https://example.com/" + strings.ToLower(title),
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create link: %d %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		ID string `json:"id"`
	}
	decode(t, rr, &resp)
	return resp.ID
}

func (s *testServer) listLinks(t *testing.T, token string) []links.Link {
	t.Helper()

	rr := s.do(t, http.MethodGet, "/api/links", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("list links: %d %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Links []links.Link `json:"links"`
	}
	decode(t, rr, &resp)
	return resp.Links
}

func TestRouter_RegisterValidation(t *testing.T) {
	s := newTestServer(t)
	s.signup(t, "alice")

	tests := []struct {
		name string
		body map[string]string
		want string
	}{
		{"duplicate email", map[string]string{"name": "Al", "username": "alice2", "email": "alice@example.com", "password": "secret123"}, "User with this email already exists"},
		{"duplicate username", map[string]string{"name": "Al", "username": "alice", "email": "other@example.com", "password": "secret123"}, "Username is already taken"},
		{"short password", map[string]string{"name": "Al", "username": "bob", "email": "bob@example.com", "password": "123"}, "Password must be at least 6 characters"},
		{"bad username", map[string]string{"name": "Al", "username": "b-b", "email": "bob@example.com", "password": "secret123"}, "Username can only contain letters, numbers, and underscores"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := s.do(t, http.MethodPost, "/api/auth/register", "", tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rr.Code)
			}
			var resp map[string]string
			decode(t, rr, &resp)
			if resp["error"] != tt.want {
				t.Errorf("error = %q, want %q", resp["error"], tt.want)
			}
		})
	}
}

func TestRouter_LoginRejectsBadPassword(t *testing.T) {
	s := newTestServer(t)
	s.signup(t, "alice")

	rr := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "wrong-password",
	})
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}

func TestRouter_RequiresAuth(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/links", "/api/analytics", "/api/appearance", "/api/profile", "/api/auth/me"} {
		rr := s.do(t, http.MethodGet, path, "", nil)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", path, rr.Code)
		}
	}
}

func TestRouter_ReorderFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.signup(t, "alice")

	a := s.createLink(t, token, "A")
	b := s.createLink(t, token, "B")
	c := s.createLink(t, token, "C")

	rr := s.do(t, http.MethodPut, "/api/links/reorder", token, map[string][]string{"linkIds": {b, a, c}})
	if rr.Code != http.StatusOK {
		t.Fatalf("reorder: %d %s", rr.Code, rr.Body.String())
	}

	got := s.listLinks(t, token)
	want := []string{b, a, c}
	for i, l := range got {
		if l.ID != want[i] || l.Position != i+1 {
			t.Errorf("links[%d] = %s@%d, want %s@%d", i, l.ID, l.Position, want[i], i+1)
		}
	}

	t.Run("empty list", func(t *testing.T) {
		rr := s.do(t, http.MethodPut, "/api/links/reorder", token, map[string][]string{"linkIds": {}})
		if rr.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rr.Code)
		}
	})

	t.Run("foreign link", func(t *testing.T) {
		other := s.signup(t, "bob")
		rr := s.do(t, http.MethodPut, "/api/links/reorder", other, map[string][]string{"linkIds": {a}})
		if rr.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rr.Code)
		}
	})
}

func TestRouter_LinkOwnership(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup(t, "alice")
	bob := s.signup(t, "bob")
	id := s.createLink(t, alice, "Blog")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   interface{}
		want   int
	}{
		{"update foreign", http.MethodPatch, "/api/links/" + id, bob, map[string]string{"title": "x"}, http.StatusForbidden},
		{"delete foreign", http.MethodDelete, "/api/links/" + id, bob, nil, http.StatusForbidden},
		{"update missing", http.MethodPut, "/api/links/nope", alice, map[string]string{"title": "x"}, http.StatusNotFound},
		{"empty update", http.MethodPatch, "/api/links/" + id, alice, map[string]string{}, http.StatusBadRequest},
		{"update own", http.MethodPatch, "/api/links/" + id, alice, map[string]bool{"is_active": false}, http.StatusOK},
		{"delete own", http.MethodDelete, "/api/links/" + id, alice, nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := s.do(t, tt.method, tt.path, tt.token, tt.body)
			if rr.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", rr.Code, tt.want, rr.Body.String())
			}
		})
	}
}

func TestRouter_TrendsRejectsUnknownMetric(t *testing.T) {
	s := newTestServer(t)
	token := s.signup(t, "alice")

	rr := s.do(t, http.MethodGet, "/api/analytics/trends?metric=bogus", token, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}

	rr = s.do(t, http.MethodGet, "/api/analytics/trends?metric=views&range=30d", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var report analytics.TrendReport
	decode(t, rr, &report)
	if report.Metric != analytics.MetricViews || report.Range != "30d" {
		t.Errorf("report = %+v", report)
	}

	rr = s.do(t, http.MethodGet, "/api/analytics/trends?metric=clicks&range=bogus", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	report = analytics.TrendReport{}
	decode(t, rr, &report)
	if report.Range != "bogus" {
		t.Errorf("Range = %q, want the requested value echoed", report.Range)
	}
}

func TestRouter_TrackingAndAnalytics(t *testing.T) {
	s := newTestServer(t)
	token := s.signup(t, "alice")
	id := s.createLink(t, token, "Blog")

	t.Run("click requires json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/track-click", strings.NewReader(`{"linkId":"`+id+`"}`))
		req.Header.Set("Content-Type", "text/plain")
		rr := httptest.NewRecorder()
		s.router.ServeHTTP(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rr.Code)
		}
	})

	t.Run("invalid link id", func(t *testing.T) {
		rr := s.do(t, http.MethodPost, "/api/track-click", "", map[string]string{"linkId": "not-a-uuid"})
		var resp map[string]string
		decode(t, rr, &resp)
		if rr.Code != http.StatusBadRequest || resp["error"] != "Invalid link ID" {
			t.Errorf("got %d %v", rr.Code, resp)
		}
	})

	t.Run("unknown link", func(t *testing.T) {
		rr := s.do(t, http.MethodPost, "/api/track-click", "", map[string]string{"linkId": "6f1c2a3e-0000-4000-8000-000000000000"})
		if rr.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rr.Code)
		}
	})

	for i := 0; i < 2; i++ {
		if rr := s.do(t, http.MethodPost, "/api/track-click", "", map[string]string{"linkId": id}); rr.Code != http.StatusOK {
			t.Fatalf("track click: %d %s", rr.Code, rr.Body.String())
		}
	}
	if rr := s.do(t, http.MethodPost, "/api/track-view", "", map[string]string{"username": "alice"}); rr.Code != http.StatusOK {
		t.Fatalf("track view: %d %s", rr.Code, rr.Body.String())
	}
	if rr := s.do(t, http.MethodPost, "/api/track-view", "", map[string]string{"username": "ghost"}); rr.Code != http.StatusNotFound {
		t.Errorf("unknown user view: %d", rr.Code)
	}

	if got := s.listLinks(t, token); len(got) != 1 || got[0].Clicks != 2 {
		t.Errorf("links = %+v, want one link with 2 clicks", got)
	}

	rr := s.do(t, http.MethodGet, "/api/analytics?range=7d", token, nil)
	var overview analytics.Overview
	decode(t, rr, &overview)
	if overview.TotalClicks != 2 || overview.TotalViews != 1 || len(overview.RecentActivity) != 3 {
		t.Errorf("overview = %+v", overview)
	}

	rr = s.do(t, http.MethodGet, "/api/analytics/export?range=30d", token, nil)
	if ct := rr.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content type = %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); cd != `attachment; filename="analytics-30d.csv"` {
		t.Errorf("content disposition = %q", cd)
	}
	if !strings.HasPrefix(rr.Body.String(), "Link Title,URL,Clicks,Date,Country,Referrer\n\"Blog\"") {
		t.Errorf("csv = %q", rr.Body.String())
	}
}

func TestRouter_PublicProfileReflectsOwnerChanges(t *testing.T) {
	s := newTestServer(t)
	token := s.signup(t, "alice")

	public := func() profile.PublicProfile {
		rr := s.do(t, http.MethodGet, "/api/public-profile/alice", "", nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("public profile: %d %s", rr.Code, rr.Body.String())
		}
		var p profile.PublicProfile
		decode(t, rr, &p)
		return p
	}

	if p := public(); len(p.Links) != 0 || p.Appearance.ProfileTheme != "light" {
		t.Fatalf("initial profile = %+v", p)
	}

	s.createLink(t, token, "Blog")
	rr := s.do(t, http.MethodPut, "/api/appearance", token, map[string]string{"profile_theme": "ocean", "custom_text_color": "#ffffff"})
	if rr.Code != http.StatusOK {
		t.Fatalf("appearance: %d %s", rr.Code, rr.Body.String())
	}
	rr = s.do(t, http.MethodPost, "/api/social-links", token, map[string]string{"platform": "github", "url": "https://github.com/alice"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("social: %d %s", rr.Code, rr.Body.String())
	}

	p := public()
	if len(p.Links) != 1 || p.Appearance.ProfileTheme != "ocean" || p.Appearance.CustomTextColor != nil || len(p.SocialLinks) != 1 {
		t.Errorf("profile after changes = %+v", p)
	}

	rr = s.do(t, http.MethodPost, "/api/social-links", token, map[string]string{"platform": "github", "url": "https://github.com/alice2"})
	var resp map[string]string
	decode(t, rr, &resp)
	if rr.Code != http.StatusBadRequest || resp["error"] != "Social link for this platform already exists" {
		t.Errorf("duplicate social: %d %v", rr.Code, resp)
	}

	if rr := s.do(t, http.MethodDelete, "/api/social-links", token, nil); rr.Code != http.StatusBadRequest {
		t.Errorf("delete without platform: %d", rr.Code)
	}

	if rr := s.do(t, http.MethodGet, "/api/public-profile/ghost", "", nil); rr.Code != http.StatusNotFound {
		t.Errorf("unknown user: %d", rr.Code)
	}
}

func TestRouter_PublicQRCode(t *testing.T) {
	s := newTestServer(t)
	s.signup(t, "alice")

	rr := s.do(t, http.MethodGet, "/api/public-profile/alice/qr?size=256", "", nil)
	if rr.Code != http.StatusOK || rr.Header().Get("Content-Type") != "image/png" {
		t.Fatalf("qr: %d %s", rr.Code, rr.Header().Get("Content-Type"))
	}
	if _, err := png.Decode(rr.Body); err != nil {
		t.Errorf("qr is not a png: %v", err)
	}

	if rr := s.do(t, http.MethodGet, "/api/public-profile/alice/qr?size=10", "", nil); rr.Code != http.StatusBadRequest {
		t.Errorf("tiny qr: %d", rr.Code)
	}
}

func TestRouter_ProfileAndAvatar(t *testing.T) {
	s := newTestServer(t)
	token := s.signup(t, "alice")

	rr := s.do(t, http.MethodPut, "/api/profile", token, map[string]string{"name": "Alice A", "bio": "hello", "hobby": ""})
	if rr.Code != http.StatusOK {
		t.Fatalf("update profile: %d %s", rr.Code, rr.Body.String())
	}

	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		t.Fatal(err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="avatar"; filename="me.png"`)
	hdr.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatal(err)
	}
	part.Write(pngBuf.Bytes())
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/avatar", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(&http.Cookie{Name: "auth-token", Value: token})
	rr = httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("upload avatar: %d %s", rr.Code, rr.Body.String())
	}
	var upload map[string]string
	decode(t, rr, &upload)
	if !strings.HasPrefix(upload["avatar_url"], "/uploads/avatars/") || !strings.HasSuffix(upload["avatar_url"], ".jpg") {
		t.Errorf("avatar_url = %q", upload["avatar_url"])
	}

	rr = s.do(t, http.MethodGet, "/api/profile", token, nil)
	var me struct {
		User struct {
			Name      string  `json:"name"`
			Bio       *string `json:"bio"`
			Hobby     *string `json:"hobby"`
			AvatarURL *string `json:"avatar_url"`
		} `json:"user"`
	}
	decode(t, rr, &me)
	if me.User.Name != "Alice A" || me.User.Bio == nil || me.User.Hobby != nil || me.User.AvatarURL == nil {
		t.Errorf("profile = %+v", me.User)
	}

	if rr := s.do(t, http.MethodDelete, "/api/avatar", token, nil); rr.Code != http.StatusOK {
		t.Fatalf("delete avatar: %d", rr.Code)
	}
	rr = s.do(t, http.MethodGet, "/api/public-profile/alice", "", nil)
	var p profile.PublicProfile
	decode(t, rr, &p)
	if p.User.AvatarURL != nil {
		t.Errorf("avatar still set on public profile: %v", *p.User.AvatarURL)
	}
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(t, http.MethodGet, "/health", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	decode(t, rr, &resp)
	if resp.Status != "healthy" || resp.Checks["database"] != "healthy" {
		t.Errorf("health = %+v", resp)
	}
}
