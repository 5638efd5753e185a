package fastly

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeAPI is an in-memory control plane covering the endpoints the client
// exercises: version lifecycle, per-version object CRUD, purging, and
// login. It enforces the same rules the real API does (no writes to
// locked versions, duplicate names conflict, at most one active version).
type fakeAPI struct {
	mu       sync.Mutex
	server   *httptest.Server
	services map[string]*fakeService
	purges   map[string][]map[string]any

	// failValidation makes activate and validate reject the version.
	failValidation bool

	// lastRequest captures headers and the decoded form body of the most
	// recent request, for transport-level assertions.
	lastRequest *http.Request
	lastForm    url.Values
}

type fakeService struct {
	id       string
	name     string
	versions []*fakeVersion
}

type fakeVersion struct {
	number  int
	active  bool
	locked  bool
	comment string
	// objects is kind -> name -> form fields as submitted.
	objects map[string]map[string]url.Values
}

func newFakeVersion(number int) *fakeVersion {
	return &fakeVersion{
		number:  number,
		objects: map[string]map[string]url.Values{},
	}
}

// newFakeAPI starts the fake server and returns a Client pointed at it.
func newFakeAPI(t *testing.T) (*fakeAPI, *Client) {
	t.Helper()

	f := &fakeAPI{
		services: map[string]*fakeService{},
		purges:   map[string][]map[string]any{},
	}
	f.server = httptest.NewServer(f.routes())
	t.Cleanup(f.server.Close)

	client, err := NewClient("test-key", WithEndpoint(f.server.URL))
	require.NoError(t, err)

	return f, client
}

// addService seeds a service with the given version numbers; the last
// flagged pair applies per call via addVersion.
func (f *fakeAPI) addService(id, name string) *fakeService {
	f.mu.Lock()
	defer f.mu.Unlock()
	svc := &fakeService{id: id, name: name}
	f.services[id] = svc
	return svc
}

func (s *fakeService) addVersion(number int, active, locked bool) *fakeVersion {
	v := newFakeVersion(number)
	v.active = active
	v.locked = locked
	s.versions = append(s.versions, v)
	return v
}

func (s *fakeService) version(number int) *fakeVersion {
	for _, v := range s.versions {
		if v.number == number {
			return v
		}
	}
	return nil
}

func (f *fakeAPI) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /login", f.handleLogin)
	mux.HandleFunc("GET /service/search", f.handleSearch)
	mux.HandleFunc("POST /service", f.handleCreateService)
	mux.HandleFunc("GET /service", f.handleListServices)
	mux.HandleFunc("GET /service/{id}", f.handleGetService)
	mux.HandleFunc("GET /service/{id}/details", f.handleGetServiceDetails)
	mux.HandleFunc("DELETE /service/{id}", f.handleDeleteService)
	mux.HandleFunc("GET /service/{id}/version", f.handleListVersions)
	mux.HandleFunc("POST /service/{id}/version", f.handleCreateVersion)
	mux.HandleFunc("GET /service/{id}/version/{n}", f.handleGetVersion)
	mux.HandleFunc("PUT /service/{id}/version/{n}/clone", f.handleClone)
	mux.HandleFunc("PUT /service/{id}/version/{n}/activate", f.handleActivate)
	mux.HandleFunc("PUT /service/{id}/version/{n}/deactivate", f.handleDeactivate)
	mux.HandleFunc("GET /service/{id}/version/{n}/validate", f.handleValidate)

	mux.HandleFunc("POST /service/{id}/version/{n}/{kind}", f.handleCreateObject)
	mux.HandleFunc("GET /service/{id}/version/{n}/{kind}", f.handleListObjects)
	mux.HandleFunc("GET /service/{id}/version/{n}/{kind}/{name}", f.handleGetObject)
	mux.HandleFunc("PUT /service/{id}/version/{n}/{kind}/{name}", f.handleUpdateObject)
	mux.HandleFunc("DELETE /service/{id}/version/{n}/{kind}/{name}", f.handleDeleteObject)
	mux.HandleFunc("PUT /service/{id}/version/{n}/vcl/{name}/main", f.handleSetMainVCL)
	mux.HandleFunc("GET /service/{id}/version/{n}/vcl/{name}/content", f.handleVCLContent)
	mux.HandleFunc("GET /service/{id}/stats/{window}", f.handleStats)
	mux.HandleFunc("GET /service/{id}/version/{n}/domain/{name}/check", f.handleCheckDomain)
	mux.HandleFunc("GET /service/{id}/version/{n}/domain/check_all", f.handleCheckAllDomains)

	mux.HandleFunc("POST /service/{id}/purge/{key}", f.handleStatusOK)
	mux.HandleFunc("POST /service/{id}/purge_all", f.handleStatusOK)
	mux.HandleFunc("GET /purge", f.handlePurgeStatus)
	mux.HandleFunc("PURGE /{path...}", f.handlePurgeURL)

	// Capture every request before dispatch.
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		f.mu.Lock()
		f.lastRequest = r
		f.lastForm = r.PostForm
		f.mu.Unlock()
		mux.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, msg, detail string) {
	writeJSON(w, status, map[string]string{
		"status": "error",
		"msg":    msg,
		"detail": detail,
	})
}

func (f *fakeAPI) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.PostFormValue("user") != "owner@example.com" || r.PostFormValue("password") != "hunter2" {
		writeAPIError(w, http.StatusUnauthorized, "invalid credentials", "")
		return
	}
	w.Header().Set("Set-Cookie", "fastly.session=deadbeef; Path=/; HttpOnly")
	writeJSON(w, http.StatusOK, map[string]any{
		"customer": map[string]any{"id": "cust1", "name": "Example"},
		"user":     map[string]any{"id": "user1", "login": "owner@example.com"},
	})
}

func (f *fakeAPI) handleSearch(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	name := r.URL.Query().Get("name")
	for _, svc := range f.services {
		if svc.name == name {
			writeJSON(w, http.StatusOK, map[string]any{"id": svc.id, "name": svc.name})
			return
		}
	}
	writeAPIError(w, http.StatusNotFound, "record not found", "")
}

func renderService(svc *fakeService, withVersions bool) map[string]any {
	active := 0
	for _, v := range svc.versions {
		if v.active {
			active = v.number
		}
	}
	out := map[string]any{
		"id":             svc.id,
		"name":           svc.name,
		"active_version": active,
	}
	if withVersions {
		versions := []map[string]any{}
		for _, v := range svc.versions {
			versions = append(versions, renderVersion(svc.id, v))
		}
		out["versions"] = versions
	}
	return out
}

func (f *fakeAPI) handleCreateService(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	name := r.PostFormValue("name")
	for _, svc := range f.services {
		if svc.name == name {
			writeAPIError(w, http.StatusConflict, "Duplicate record", "")
			return
		}
	}
	svc := &fakeService{id: fmt.Sprintf("svc-%d", len(f.services)+1), name: name}
	svc.versions = append(svc.versions, newFakeVersion(1))
	f.services[svc.id] = svc
	writeJSON(w, http.StatusOK, renderService(svc, false))
}

func (f *fakeAPI) handleListServices(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []map[string]any{}
	for _, svc := range f.services {
		out = append(out, renderService(svc, false))
	}
	writeJSON(w, http.StatusOK, out)
}

func (f *fakeAPI) handleGetService(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	svc, ok := f.services[r.PathValue("id")]
	if !ok {
		writeAPIError(w, http.StatusNotFound, "record not found", "")
		return
	}
	writeJSON(w, http.StatusOK, renderService(svc, false))
}

func (f *fakeAPI) handleGetServiceDetails(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	svc, ok := f.services[r.PathValue("id")]
	if !ok {
		writeAPIError(w, http.StatusNotFound, "record not found", "")
		return
	}
	writeJSON(w, http.StatusOK, renderService(svc, true))
}

func (f *fakeAPI) handleDeleteService(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.services[r.PathValue("id")]; !ok {
		writeAPIError(w, http.StatusNotFound, "record not found", "")
		return
	}
	delete(f.services, r.PathValue("id"))
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (f *fakeAPI) lookup(w http.ResponseWriter, r *http.Request) (*fakeService, *fakeVersion, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	svc, ok := f.services[r.PathValue("id")]
	if !ok {
		writeAPIError(w, http.StatusNotFound, "record not found", "unknown service")
		return nil, nil, false
	}
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil {
		writeAPIError(w, http.StatusNotFound, "record not found", "bad version")
		return nil, nil, false
	}
	v := svc.version(n)
	if v == nil {
		writeAPIError(w, http.StatusNotFound, "record not found", "unknown version")
		return nil, nil, false
	}
	return svc, v, true
}

func renderVersion(serviceID string, v *fakeVersion) map[string]any {
	return map[string]any{
		"number":     v.number,
		"service_id": serviceID,
		"active":     v.active,
		"locked":     v.locked,
		"comment":    v.comment,
	}
}

func (f *fakeAPI) handleListVersions(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	svc, ok := f.services[r.PathValue("id")]
	if !ok {
		writeAPIError(w, http.StatusNotFound, "record not found", "unknown service")
		return
	}
	out := []map[string]any{}
	for _, v := range svc.versions {
		out = append(out, renderVersion(svc.id, v))
	}
	writeJSON(w, http.StatusOK, out)
}

func (f *fakeAPI) handleCreateVersion(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	svc, ok := f.services[r.PathValue("id")]
	if !ok {
		writeAPIError(w, http.StatusNotFound, "record not found", "unknown service")
		return
	}
	next := 0
	for _, v := range svc.versions {
		if v.number > next {
			next = v.number
		}
	}
	v := newFakeVersion(next + 1)
	v.comment = r.PostFormValue("comment")
	svc.versions = append(svc.versions, v)
	writeJSON(w, http.StatusOK, renderVersion(svc.id, v))
}

func (f *fakeAPI) handleGetVersion(w http.ResponseWriter, r *http.Request) {
	svc, v, ok := f.lookup(w, r)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, renderVersion(svc.id, v))
}

func (f *fakeAPI) handleSetMainVCL(w http.ResponseWriter, r *http.Request) {
	svc, v, ok := f.lookup(w, r)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	name := r.PathValue("name")
	fields, exists := v.objects["vcl"][name]
	if !exists {
		writeAPIError(w, http.StatusNotFound, "record not found", "")
		return
	}
	for other, otherFields := range v.objects["vcl"] {
		if other != name {
			otherFields.Set("main", "0")
		}
	}
	fields.Set("main", "1")
	writeJSON(w, http.StatusOK, renderObject(svc.id, v.number, fields))
}

func (f *fakeAPI) handleClone(w http.ResponseWriter, r *http.Request) {
	svc, src, ok := f.lookup(w, r)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	next := 0
	for _, v := range svc.versions {
		if v.number > next {
			next = v.number
		}
	}
	clone := newFakeVersion(next + 1)
	clone.comment = src.comment
	for kind, objects := range src.objects {
		clone.objects[kind] = map[string]url.Values{}
		for name, fields := range objects {
			copied := url.Values{}
			for k, vs := range fields {
				copied[k] = append([]string(nil), vs...)
			}
			clone.objects[kind][name] = copied
		}
	}
	svc.versions = append(svc.versions, clone)
	writeJSON(w, http.StatusOK, renderVersion(svc.id, clone))
}

func (f *fakeAPI) handleActivate(w http.ResponseWriter, r *http.Request) {
	svc, target, ok := f.lookup(w, r)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failValidation {
		writeAPIError(w, http.StatusBadRequest, "vcl compilation failed", "syntax error in main")
		return
	}
	for _, v := range svc.versions {
		v.active = false
	}
	target.active = true
	target.locked = true
	writeJSON(w, http.StatusOK, renderVersion(svc.id, target))
}

func (f *fakeAPI) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	svc, target, ok := f.lookup(w, r)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	target.active = false
	writeJSON(w, http.StatusOK, renderVersion(svc.id, target))
}

func (f *fakeAPI) handleValidate(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := f.lookup(w, r); !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failValidation {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "error",
			"msg":    "vcl compilation failed",
			"detail": "syntax error in main",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// objectDefaults are the server-side defaults applied to fields omitted
// at creation.
var objectDefaults = map[string]map[string]string{
	"backend": {
		"port":            "80",
		"connect_timeout": "1000",
		"weight":          "100",
		"use_ssl":         "0",
	},
	"condition": {
		"priority": "10",
	},
	"response_object": {
		"status":   "200",
		"response": "OK",
	},
}

func renderObject(serviceID string, version int, fields url.Values) map[string]any {
	obj := map[string]any{
		"service_id": serviceID,
		"version":    version,
	}
	for k := range fields {
		obj[k] = fields.Get(k)
	}
	return obj
}

func (f *fakeAPI) handleCreateObject(w http.ResponseWriter, r *http.Request) {
	svc, v, ok := f.lookup(w, r)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if v.locked {
		writeAPIError(w, http.StatusConflict, "version is locked", "clone the version before editing")
		return
	}
	kind := r.PathValue("kind")
	name := r.PostFormValue("name")
	if v.objects[kind] == nil {
		v.objects[kind] = map[string]url.Values{}
	}
	if _, exists := v.objects[kind][name]; exists {
		writeAPIError(w, http.StatusConflict, "Duplicate record", fmt.Sprintf("%s %q already exists", kind, name))
		return
	}
	fields := url.Values{}
	for k, vs := range r.PostForm {
		fields[k] = append([]string(nil), vs...)
	}
	for k, def := range objectDefaults[kind] {
		if fields.Get(k) == "" {
			fields.Set(k, def)
		}
	}
	v.objects[kind][name] = fields
	writeJSON(w, http.StatusOK, renderObject(svc.id, v.number, fields))
}

func (f *fakeAPI) handleListObjects(w http.ResponseWriter, r *http.Request) {
	svc, v, ok := f.lookup(w, r)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []map[string]any{}
	for _, fields := range v.objects[r.PathValue("kind")] {
		out = append(out, renderObject(svc.id, v.number, fields))
	}
	writeJSON(w, http.StatusOK, out)
}

func (f *fakeAPI) handleGetObject(w http.ResponseWriter, r *http.Request) {
	svc, v, ok := f.lookup(w, r)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	fields, exists := v.objects[r.PathValue("kind")][r.PathValue("name")]
	if !exists {
		writeAPIError(w, http.StatusNotFound, "record not found", "")
		return
	}
	writeJSON(w, http.StatusOK, renderObject(svc.id, v.number, fields))
}

func (f *fakeAPI) handleUpdateObject(w http.ResponseWriter, r *http.Request) {
	svc, v, ok := f.lookup(w, r)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if v.locked {
		writeAPIError(w, http.StatusConflict, "version is locked", "clone the version before editing")
		return
	}
	kind := r.PathValue("kind")
	name := r.PathValue("name")
	fields, exists := v.objects[kind][name]
	if !exists {
		writeAPIError(w, http.StatusNotFound, "record not found", "")
		return
	}
	for k, vs := range r.PostForm {
		fields[k] = append([]string(nil), vs...)
	}
	// A rename moves the object under its new key.
	if renamed := r.PostFormValue("name"); renamed != "" && renamed != name {
		delete(v.objects[kind], name)
		v.objects[kind][renamed] = fields
	}
	writeJSON(w, http.StatusOK, renderObject(svc.id, v.number, fields))
}

func (f *fakeAPI) handleDeleteObject(w http.ResponseWriter, r *http.Request) {
	_, v, ok := f.lookup(w, r)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if v.locked {
		writeAPIError(w, http.StatusConflict, "version is locked", "clone the version before editing")
		return
	}
	kind := r.PathValue("kind")
	name := r.PathValue("name")
	if _, exists := v.objects[kind][name]; !exists {
		writeAPIError(w, http.StatusNotFound, "record not found", "")
		return
	}
	delete(v.objects[kind], name)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (f *fakeAPI) handleVCLContent(w http.ResponseWriter, r *http.Request) {
	_, v, ok := f.lookup(w, r)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	fields, exists := v.objects["vcl"][r.PathValue("name")]
	if !exists {
		writeAPIError(w, http.StatusNotFound, "record not found", "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"content": "<pre>" + fields.Get("content") + "</pre>",
	})
}

func (f *fakeAPI) handleStats(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.services[r.PathValue("id")]; !ok {
		writeAPIError(w, http.StatusNotFound, "record not found", "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"window":   r.PathValue("window"),
		"requests": 1042,
		"hits":     986,
	})
}

func domainCheckTuple(serviceID string, version int, fields url.Values) []any {
	return []any{
		renderObject(serviceID, version, fields),
		"global.prod.fastly.net.",
		true,
	}
}

func (f *fakeAPI) handleCheckDomain(w http.ResponseWriter, r *http.Request) {
	svc, v, ok := f.lookup(w, r)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	fields, exists := v.objects["domain"][r.PathValue("name")]
	if !exists {
		writeAPIError(w, http.StatusNotFound, "record not found", "")
		return
	}
	writeJSON(w, http.StatusOK, domainCheckTuple(svc.id, v.number, fields))
}

func (f *fakeAPI) handleCheckAllDomains(w http.ResponseWriter, r *http.Request) {
	svc, v, ok := f.lookup(w, r)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := [][]any{}
	for _, fields := range v.objects["domain"] {
		out = append(out, domainCheckTuple(svc.id, v.number, fields))
	}
	writeJSON(w, http.StatusOK, out)
}

func (f *fakeAPI) handleStatusOK(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (f *fakeAPI) handlePurgeURL(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := fmt.Sprintf("purge-%d", len(f.purges)+1)
	f.purges[id] = []map[string]any{
		{"server": "cache-lhr1", "timestamp": 1700000000},
		{"server": "cache-sjc2", "timestamp": 1700000003},
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "id": id})
}

func (f *fakeAPI) handlePurgeStatus(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	statuses, ok := f.purges[r.URL.Query().Get("id")]
	if !ok {
		writeJSON(w, http.StatusOK, []map[string]any{})
		return
	}
	writeJSON(w, http.StatusOK, statuses)
}
