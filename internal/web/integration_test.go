package web_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/prettyteeth/internal/domain"
	"github.com/vbonduro/prettyteeth/internal/metrics"
	"github.com/vbonduro/prettyteeth/internal/photostore/local"
	"github.com/vbonduro/prettyteeth/internal/reference"
	"github.com/vbonduro/prettyteeth/internal/service"
	"github.com/vbonduro/prettyteeth/internal/store"
	"github.com/vbonduro/prettyteeth/internal/web"
	"github.com/vbonduro/prettyteeth/internal/web/templates"
)

// minimalJPEG is 512 bytes with the JPEG magic bytes header followed by zeros.
// http.DetectContentType identifies JPEG from the leading 0xFF 0xD8 bytes.
var minimalJPEG = func() []byte {
	b := make([]byte, 512)
	b[0] = 0xFF
	b[1] = 0xD8
	b[2] = 0xFF
	b[3] = 0xE0
	return b
}()

type envelope struct {
	Action  string          `json:"action"`
	Type    string          `json:"type"`
	Detail  string          `json:"detail"`
	Success bool            `json:"success"`
	Data    string          `json:"data"`
	Item    json.RawMessage `json:"item"`
	Items   json.RawMessage `json:"items"`
}

type testEnv struct {
	srv  *httptest.Server
	repo *store.Repository
}

// newTestServer wires a real server over a fresh repository and an on-disk
// photo store rooted in a temp dir.
func newTestServer(t *testing.T, opts web.Options) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	repo := store.NewRepository()
	photoStg, err := local.New(t.TempDir())
	require.NoError(t, err)

	svc := web.Services{
		Schedules: service.NewScheduleService(repo.Schedules, logger),
		Reminders: service.NewReminderService(repo.Reminders, logger),
		Images:    service.NewImageService(repo.Images, photoStg, logger),
		Reference: reference.NewProvider(),
		Counts:    repo.Counts,
	}
	srv := httptest.NewServer(web.NewServer(svc, templates.FS, opts, logger))
	t.Cleanup(srv.Close)
	return &testEnv{srv: srv, repo: repo}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			rd = strings.NewReader(b)
		default:
			data, err := json.Marshal(b)
			require.NoError(t, err)
			rd = bytes.NewReader(data)
		}
	}
	req, err := http.NewRequest(method, e.srv.URL+path, rd)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func (e *testEnv) envelope(t *testing.T, method, path string, body any, wantStatus int) envelope {
	t.Helper()
	resp, data := e.do(t, method, path, body)
	require.Equal(t, wantStatus, resp.StatusCode, string(data))
	var env envelope
	require.NoError(t, json.Unmarshal(data, &env), string(data))
	return env
}

// buildMultipartBody creates a multipart/form-data upload body. A nil
// fileData omits the file part.
func buildMultipartBody(t *testing.T, fields map[string]string, fileName string, fileData []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileData != nil {
		fw, err := w.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = fw.Write(fileData)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func (e *testEnv) upload(t *testing.T, fields map[string]string, fileName string, fileData []byte) (int, envelope) {
	t.Helper()
	body, ct := buildMultipartBody(t, fields, fileName, fileData)
	resp, err := http.Post(e.srv.URL+"/api/images/upload", ct, body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestIntegration_ScheduleLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	env := newTestServer(t, web.Options{})

	created := env.envelope(t, http.MethodPost, "/api/schedules", map[string]string{
		"date": "2024-12-25", "time": "09:00", "title": "Khám định kỳ", "type": "checkup",
	}, http.StatusCreated)
	assert.Equal(t, "create", created.Action)
	assert.Equal(t, "schedule", created.Type)
	assert.True(t, created.Success)

	var sc domain.Schedule
	require.NoError(t, json.Unmarshal(created.Item, &sc))
	assert.NotEmpty(t, sc.ID)
	assert.Equal(t, domain.ScheduleCheckup, sc.Type)
	assert.False(t, sc.Completed)
	assert.Equal(t, "ID: "+sc.ID, created.Data)

	env.envelope(t, http.MethodPost, "/api/schedules", map[string]string{
		"date": "2024-12-20", "time": "14:00", "title": "Chỉnh niềng",
	}, http.StatusCreated)

	listed := env.envelope(t, http.MethodGet, "/api/schedules", nil, http.StatusOK)
	var all []domain.Schedule
	require.NoError(t, json.Unmarshal(listed.Items, &all))
	require.Len(t, all, 2)
	assert.Equal(t, "2024-12-20", all[0].Date)
	assert.Equal(t, "2024-12-25", all[1].Date)
	assert.Equal(t, "2024-12-20 14:00: Chỉnh niềng; 2024-12-25 09:00: Khám định kỳ", listed.Data)

	updated := env.envelope(t, http.MethodPut, "/api/schedules/"+sc.ID, map[string]string{
		"date": "2024-12-26", "time": "10:00", "title": "Khám lại",
	}, http.StatusOK)
	var up domain.Schedule
	require.NoError(t, json.Unmarshal(updated.Item, &up))
	assert.Equal(t, sc.ID, up.ID)
	assert.Equal(t, domain.ScheduleAppointment, up.Type)
	assert.True(t, sc.CreatedAt.Equal(up.CreatedAt))

	done := env.envelope(t, http.MethodPost, "/api/schedules/"+sc.ID+"/complete", nil, http.StatusOK)
	var doneSc domain.Schedule
	require.NoError(t, json.Unmarshal(done.Item, &doneSc))
	assert.True(t, doneSc.Completed)

	undone := env.envelope(t, http.MethodPost, "/api/schedules/"+sc.ID+"/complete", map[string]bool{"completed": false}, http.StatusOK)
	var undoneSc domain.Schedule
	require.NoError(t, json.Unmarshal(undone.Item, &undoneSc))
	assert.False(t, undoneSc.Completed)

	env.envelope(t, http.MethodDelete, "/api/schedules/"+sc.ID, nil, http.StatusOK)
	missing := env.envelope(t, http.MethodGet, "/api/schedules/"+sc.ID, nil, http.StatusNotFound)
	assert.False(t, missing.Success)
	assert.Equal(t, "read", missing.Action)
	assert.Equal(t, 1, env.repo.Counts().Schedules)
}

func TestIntegration_ScheduleValidation(t *testing.T) {
	env := newTestServer(t, web.Options{})

	tests := []struct {
		name       string
		body       any
		wantDetail string
	}{
		{name: "missing title", body: map[string]string{"date": "2024-12-25", "time": "09:00"}, wantDetail: "title is required"},
		{name: "malformed JSON", body: `{"date":`, wantDetail: "invalid JSON body"},
		{name: "empty body", body: "", wantDetail: "request body is empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := env.envelope(t, http.MethodPost, "/api/schedules", tt.body, http.StatusBadRequest)
			assert.False(t, got.Success)
			assert.Contains(t, got.Detail, tt.wantDetail)
		})
	}
	assert.Zero(t, env.repo.Counts().Schedules)
}

func TestIntegration_UnknownIDs(t *testing.T) {
	env := newTestServer(t, web.Options{})

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/schedules/nope"},
		{http.MethodDelete, "/api/schedules/nope"},
		{http.MethodPost, "/api/schedules/nope/complete"},
		{http.MethodGet, "/api/reminders/nope"},
		{http.MethodPost, "/api/reminders/nope/deactivate"},
		{http.MethodDelete, "/api/reminders/nope"},
		{http.MethodGet, "/api/images/nope"},
		{http.MethodDelete, "/api/images/nope"},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			got := env.envelope(t, tc.method, tc.path, nil, http.StatusNotFound)
			assert.False(t, got.Success)
			assert.Contains(t, got.Detail, `"nope"`)
		})
	}
}

func TestIntegration_ReminderDeactivate(t *testing.T) {
	env := newTestServer(t, web.Options{})

	late := env.envelope(t, http.MethodPost, "/api/reminders", map[string]string{
		"title": "Uống thuốc", "scheduledDateTime": "2024-12-25T20:00", "type": "medication",
	}, http.StatusCreated)
	env.envelope(t, http.MethodPost, "/api/reminders", map[string]string{
		"title": "Đánh răng", "scheduledDateTime": "2024-12-25T07:00",
	}, http.StatusCreated)

	var rm domain.Reminder
	require.NoError(t, json.Unmarshal(late.Item, &rm))
	assert.True(t, rm.Active)
	assert.Equal(t, domain.ReminderMedication, rm.Type)

	listed := env.envelope(t, http.MethodGet, "/api/reminders", nil, http.StatusOK)
	var active []domain.Reminder
	require.NoError(t, json.Unmarshal(listed.Items, &active))
	require.Len(t, active, 2)
	assert.Equal(t, "Đánh răng", active[0].Title)

	got := env.envelope(t, http.MethodPost, "/api/reminders/"+rm.ID+"/deactivate", nil, http.StatusOK)
	assert.Equal(t, "update", got.Action)

	listed = env.envelope(t, http.MethodGet, "/api/reminders", nil, http.StatusOK)
	active = nil
	require.NoError(t, json.Unmarshal(listed.Items, &active))
	require.Len(t, active, 1)
	assert.Equal(t, "Đánh răng", active[0].Title)

	// Deactivated reminders are hidden from the list but still addressable.
	single := env.envelope(t, http.MethodGet, "/api/reminders/"+rm.ID, nil, http.StatusOK)
	var stored domain.Reminder
	require.NoError(t, json.Unmarshal(single.Item, &stored))
	assert.False(t, stored.Active)
}

func TestIntegration_ImageUploadServeDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	env := newTestServer(t, web.Options{})

	status, created := env.upload(t, map[string]string{
		"date": "2024-12-25", "description": "Trước khi niềng", "category": "before",
	}, "front.jpg", minimalJPEG)
	require.Equal(t, http.StatusCreated, status, created.Detail)

	var img domain.ImageRecord
	require.NoError(t, json.Unmarshal(created.Item, &img))
	assert.Equal(t, domain.CategoryBefore, img.Category)
	assert.Equal(t, "front.jpg", img.OriginalName)
	assert.True(t, strings.HasSuffix(img.Filename, ".jpg"), img.Filename)
	assert.NotEqual(t, "front.jpg", img.Filename)

	resp, data := env.do(t, http.MethodGet, "/uploads/"+img.Filename, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))
	assert.Equal(t, minimalJPEG, data)

	byDate := env.envelope(t, http.MethodGet, "/api/images/date/2024-12-25", nil, http.StatusOK)
	var onDay []domain.ImageRecord
	require.NoError(t, json.Unmarshal(byDate.Items, &onDay))
	require.Len(t, onDay, 1)
	assert.Equal(t, "before: Trước khi niềng", byDate.Data)

	other := env.envelope(t, http.MethodGet, "/api/images/date/2024-12-24", nil, http.StatusOK)
	assert.JSONEq(t, `[]`, string(other.Items))

	env.envelope(t, http.MethodDelete, "/api/images/"+img.ID, nil, http.StatusOK)
	resp, _ = env.do(t, http.MethodGet, "/uploads/"+img.Filename, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Zero(t, env.repo.Counts().Images)
}

func TestIntegration_ImageUploadAcceptsAnyFile(t *testing.T) {
	env := newTestServer(t, web.Options{})

	tests := []struct {
		name        string
		fileName    string
		data        []byte
		wantExt     string
		wantContent string
	}{
		{
			name:        "x-ray exported as PDF",
			fileName:    "pano.pdf",
			data:        []byte("%PDF-1.4 panoramic x-ray"),
			wantExt:     ".pdf",
			wantContent: "application/pdf",
		},
		{
			name:        "DICOM without extension",
			fileName:    "ct-slice",
			data:        append(make([]byte, 128), []byte("DICM")...),
			wantExt:     ".bin",
			wantContent: "application/octet-stream",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, created := env.upload(t, map[string]string{
				"date": "2024-12-25", "description": "Phim chụp", "category": "xray",
			}, tt.fileName, tt.data)
			require.Equal(t, http.StatusCreated, status, created.Detail)

			var img domain.ImageRecord
			require.NoError(t, json.Unmarshal(created.Item, &img))
			assert.Equal(t, tt.fileName, img.OriginalName)
			assert.True(t, strings.HasSuffix(img.Filename, tt.wantExt), img.Filename)

			resp, data := env.do(t, http.MethodGet, "/uploads/"+img.Filename, nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.wantContent, resp.Header.Get("Content-Type"))
			assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
			assert.Equal(t, tt.data, data)
		})
	}
	assert.Equal(t, 2, env.repo.Counts().Images)
}

func TestIntegration_ImageUploadRejected(t *testing.T) {
	env := newTestServer(t, web.Options{MaxUploadBytes: 2048})

	tests := []struct {
		name       string
		fields     map[string]string
		file       []byte
		wantDetail string
	}{
		{
			name:       "empty file",
			fields:     map[string]string{"date": "2024-12-25"},
			file:       []byte{},
			wantDetail: "file is required",
		},
		{
			name:       "missing file",
			fields:     map[string]string{"date": "2024-12-25"},
			wantDetail: "file is required",
		},
		{
			name:       "missing date",
			file:       minimalJPEG,
			wantDetail: "date is required",
		},
		{
			name:       "too large",
			fields:     map[string]string{"date": "2024-12-25"},
			file:       append(append([]byte{}, minimalJPEG...), make([]byte, 4096)...),
			wantDetail: "exceeds",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, got := env.upload(t, tt.fields, "x.jpg", tt.file)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.False(t, got.Success)
			assert.Contains(t, got.Detail, tt.wantDetail)
		})
	}
	assert.Zero(t, env.repo.Counts().Images)
}

func TestIntegration_UploadsTraversal(t *testing.T) {
	env := newTestServer(t, web.Options{})

	resp, _ := env.do(t, http.MethodGet, "/uploads/..%2F..%2Fetc%2Fpasswd", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestIntegration_DentalTips(t *testing.T) {
	env := newTestServer(t, web.Options{})

	tests := []struct {
		path string
		want int
	}{
		{"/api/dental-tips", 5},
		{"/api/dental-tips/daily_care", 2},
		{"/api/dental-tips?category=Nutrition", 1},
		{"/api/dental-tips/emergency", 0},
		{"/api/dental-tips/unknown", 0},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, data := env.do(t, http.MethodGet, tt.path, nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			var tips []reference.DentalTip
			require.NoError(t, json.Unmarshal(data, &tips))
			assert.Len(t, tips, tt.want)
		})
	}
}

func TestIntegration_ReferenceData(t *testing.T) {
	env := newTestServer(t, web.Options{})

	resp, data := env.do(t, http.MethodGet, "/api/appointments", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var appts []reference.Appointment
	require.NoError(t, json.Unmarshal(data, &appts))
	assert.Len(t, appts, 3)

	resp, data = env.do(t, http.MethodGet, "/api/patients/anyone", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var p reference.Patient
	require.NoError(t, json.Unmarshal(data, &p))
	assert.Equal(t, "patient_1", p.ID)

	resp, data = env.do(t, http.MethodGet, "/api/treatments/patient_1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var treatments []reference.Treatment
	require.NoError(t, json.Unmarshal(data, &treatments))
	assert.Len(t, treatments, 2)

	resp, data = env.do(t, http.MethodPost, "/api/appointments", map[string]string{
		"patientName": "Lan", "dateTime": "2024-12-30T09:00:00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	var echoed struct {
		Success     bool                  `json:"success"`
		Appointment reference.Appointment `json:"appointment"`
	}
	require.NoError(t, json.Unmarshal(data, &echoed))
	assert.True(t, echoed.Success)
	assert.Equal(t, "Lan", echoed.Appointment.PatientName)
	assert.Equal(t, reference.AppointmentScheduled, echoed.Appointment.Status)

	// Echoed writes are not persisted.
	_, data = env.do(t, http.MethodGet, "/api/appointments", nil)
	require.NoError(t, json.Unmarshal(data, &appts))
	assert.Len(t, appts, 3)

	resp, _ = env.do(t, http.MethodPost, "/api/treatments", `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestIntegration_CORSPreflight(t *testing.T) {
	env := newTestServer(t, web.Options{CORSAllowedOrigin: "https://app.example"})

	req, err := http.NewRequest(http.MethodOptions, env.srv.URL+"/api/schedules", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://app.example", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestIntegration_RateLimit(t *testing.T) {
	m := metrics.NewCollector(nil)
	env := newTestServer(t, web.Options{RateLimitRPS: 0.001, RateLimitBurst: 1, Metrics: m})

	resp, _ := env.do(t, http.MethodGet, "/api/schedules", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = env.do(t, http.MethodGet, "/api/schedules", nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("Retry-After"))
}

func TestIntegration_MetricsAndHealth(t *testing.T) {
	m := metrics.NewCollector(nil)
	env := newTestServer(t, web.Options{Metrics: m})

	env.envelope(t, http.MethodPost, "/api/schedules", map[string]string{
		"date": "2024-12-25", "time": "09:00", "title": "Khám",
	}, http.StatusCreated)

	resp, data := env.do(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","counts":{"schedules":1,"images":0,"reminders":0}}`, string(data))

	resp, data = env.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	text := string(data)
	assert.Contains(t, text, `prettyteeth_http_requests_total{method="POST",route="POST /api/schedules",status="201"} 1`)
	assert.Contains(t, text, `prettyteeth_repository_mutations_total{action="create",kind="schedule"} 1`)
}

func TestIntegration_IndexPage(t *testing.T) {
	env := newTestServer(t, web.Options{})

	resp, data := env.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(data), "PrettyTeeth")

	resp, _ = env.do(t, http.MethodGet, "/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
