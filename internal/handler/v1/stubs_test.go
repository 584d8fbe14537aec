package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/availability"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/domain/directory"
	"github.com/dmehra2102/prod-golang-projects/medschedule/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAvailability struct {
	set    func(p domain.Principal, cmd *availability.SetWindowCommand) (*availability.Window, error)
	list   func(doctorID uuid.UUID) ([]*availability.Window, error)
	forDay func(doctorID uuid.UUID, day availability.DayOfWeek) (*availability.Window, error)
}

func (s *stubAvailability) SetAvailability(_ context.Context, p domain.Principal, cmd *availability.SetWindowCommand) (*availability.Window, error) {
	return s.set(p, cmd)
}

func (s *stubAvailability) GetAvailability(_ context.Context, doctorID uuid.UUID) ([]*availability.Window, error) {
	return s.list(doctorID)
}

func (s *stubAvailability) GetAvailabilityForDay(_ context.Context, doctorID uuid.UUID, day availability.DayOfWeek) (*availability.Window, error) {
	return s.forDay(doctorID, day)
}

type stubBooking struct {
	book func(p domain.Principal, cmd *appointment.BookCommand) (*appointment.Appointment, error)
}

func (s *stubBooking) BookAppointment(_ context.Context, p domain.Principal, cmd *appointment.BookCommand) (*appointment.Appointment, error) {
	return s.book(p, cmd)
}

type stubStatistics struct {
	stats   func(p domain.Principal, departmentID uuid.UUID, period service.Period) (*service.DepartmentStatistics, error)
	profile func(p domain.Principal) (*service.HospitalProfile, error)
}

func (s *stubStatistics) DepartmentStatistics(_ context.Context, p domain.Principal, departmentID uuid.UUID, period service.Period) (*service.DepartmentStatistics, error) {
	return s.stats(p, departmentID, period)
}

func (s *stubStatistics) HospitalProfile(_ context.Context, p domain.Principal) (*service.HospitalProfile, error) {
	return s.profile(p)
}

type stubQuery struct {
	hospitals  func() ([]*directory.Hospital, error)
	department func(hospitalID uuid.UUID, name string) ([]service.DoctorAvailability, error)
	worklist   func(p domain.Principal, date *time.Time) ([]service.WorklistEntry, error)
	history    func(p domain.Principal, date *time.Time) (*service.TreatmentHistory, error)
	profile    func(p domain.Principal) (*service.DoctorProfile, error)
}

func (s *stubQuery) ListHospitals(context.Context) ([]*directory.Hospital, error) {
	return s.hospitals()
}

func (s *stubQuery) AvailabilityForDepartment(_ context.Context, hospitalID uuid.UUID, name string) ([]service.DoctorAvailability, error) {
	return s.department(hospitalID, name)
}

func (s *stubQuery) DoctorAppointmentsForDate(_ context.Context, p domain.Principal, date *time.Time) ([]service.WorklistEntry, error) {
	return s.worklist(p, date)
}

func (s *stubQuery) TreatmentHistory(_ context.Context, p domain.Principal, date *time.Time) (*service.TreatmentHistory, error) {
	return s.history(p, date)
}

func (s *stubQuery) DoctorProfile(_ context.Context, p domain.Principal) (*service.DoctorProfile, error) {
	return s.profile(p)
}

// staticTokens accepts any bearer token and yields fixed claims.
type staticTokens struct {
	claims *domain.Claims
}

func (s staticTokens) ValidateAccessToken(string) (*domain.Claims, error) {
	return s.claims, nil
}

func newTestRouter(t *testing.T, claims *domain.Claims, svc Services) *gin.Engine {
	t.Helper()
	r := gin.New()
	Register(r.Group("/api/v1"), svc, staticTokens{claims: claims}, func(c *gin.Context) { c.Next() })
	return r
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", "Bearer test")
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("decoding error body %q: %v", w.Body.String(), err)
	}
	return e
}

func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var resp APIResponse[T]
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding body %q: %v", w.Body.String(), err)
	}
	return resp.Data
}

var (
	hospitalID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	adminID    = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	doctorID   = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	patientID  = uuid.MustParse("44444444-4444-4444-4444-444444444444")
)

func adminClaims() *domain.Claims {
	h := hospitalID
	return &domain.Claims{Subject: adminID, Email: "admin@example.com", Role: domain.RoleAdmin, HospitalID: &h}
}

func doctorClaims() *domain.Claims {
	return &domain.Claims{Subject: doctorID, Email: "doc@example.com", Role: domain.RoleDoctor}
}

func patientClaims() *domain.Claims {
	return &domain.Claims{Subject: patientID, Email: "pat@example.com", Role: domain.RolePatient}
}
