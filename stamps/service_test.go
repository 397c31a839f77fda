package stamps

import (
	"context"
	"errors"
	"testing"
	"time"

	"stamprally-backend/models"
)

type fakeRepo struct {
	masters     map[string]*models.StampMaster
	collections map[string]CollectedStamp // key: userID + "/" + stampID
	failMaster  bool
	failInsert  bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		masters:     map[string]*models.StampMaster{},
		collections: map[string]CollectedStamp{},
	}
}

func (f *fakeRepo) GetStampMaster(_ context.Context, stampID string) (*models.StampMaster, error) {
	if f.failMaster {
		return nil, errors.New("boom")
	}
	return f.masters[stampID], nil
}

func (f *fakeRepo) InsertCollection(_ context.Context, userID, stampID, method string, collectedAt int64) (bool, error) {
	if f.failInsert {
		return false, errors.New("boom")
	}
	key := userID + "/" + stampID
	if _, ok := f.collections[key]; ok {
		return false, nil
	}
	f.collections[key] = CollectedStamp{StampID: stampID, CollectedAt: collectedAt, Method: method}
	return true, nil
}

func (f *fakeRepo) ListUserStamps(_ context.Context, userID string) ([]CollectedStamp, error) {
	out := make([]CollectedStamp, 0)
	for key, s := range f.collections {
		if len(key) > len(s.StampID) && key[:len(key)-len(s.StampID)-1] == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

type recordingNotifier struct {
	calls int
}

func (n *recordingNotifier) StampAwarded(string, *models.StampMaster) { n.calls++ }

func serviceErr(t *testing.T, err error) *ServiceError {
	t.Helper()
	var se *ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("expected a ServiceError, got %v", err)
	}
	return se
}

func TestAwardSuccess(t *testing.T) {
	repo := newFakeRepo()
	repo.masters["S1"] = &models.StampMaster{StampID: "S1", Name: "Station Plaza", Type: "GPS"}
	notifier := &recordingNotifier{}
	svc := NewService(repo, notifier, false)

	got, err := svc.Award(context.Background(), "U1", "S1", "GPS")
	if err != nil {
		t.Fatalf("expected award to succeed, got %v", err)
	}
	if got.UserID != "U1" || got.StampID != "S1" || got.Method != "GPS" {
		t.Fatalf("unexpected collection: %+v", got)
	}
	if got.CollectedAt == 0 {
		t.Fatal("expected collected_at to be set")
	}
	if notifier.calls != 1 {
		t.Fatalf("expected 1 notification, got %d", notifier.calls)
	}
}

func TestAwardValidation(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, false)

	cases := []struct {
		user, stamp, method string
	}{
		{"", "S1", "GPS"},
		{"U1", "", "GPS"},
		{"U1", "S1", ""},
		{"U1", "S1", "NFC"},
	}
	for _, c := range cases {
		_, err := svc.Award(context.Background(), c.user, c.stamp, c.method)
		se := serviceErr(t, err)
		if se.Code != "VALIDATION_ERROR" || se.Status != 400 {
			t.Fatalf("expected VALIDATION_ERROR 400 for %+v, got %+v", c, se)
		}
	}
}

func TestAwardUnknownStamp(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, false)

	_, err := svc.Award(context.Background(), "U1", "NOPE", "GPS")
	se := serviceErr(t, err)
	if se.Code != "STAMP_NOT_FOUND" || se.Status != 404 {
		t.Fatalf("expected STAMP_NOT_FOUND 404, got %+v", se)
	}
}

func TestAwardDuplicateIsConflict(t *testing.T) {
	repo := newFakeRepo()
	repo.masters["S1"] = &models.StampMaster{StampID: "S1", Name: "Station Plaza"}
	svc := NewService(repo, nil, false)

	if _, err := svc.Award(context.Background(), "U1", "S1", "GPS"); err != nil {
		t.Fatalf("first award failed: %v", err)
	}

	_, err := svc.Award(context.Background(), "U1", "S1", "GPS")
	se := serviceErr(t, err)
	if se.Code != "STAMP_ALREADY_EXISTS" || se.Status != 409 {
		t.Fatalf("expected STAMP_ALREADY_EXISTS 409, got %+v", se)
	}
	if len(repo.collections) != 1 {
		t.Fatalf("expected exactly one collection record, got %d", len(repo.collections))
	}
}

func TestAwardValidityWindow(t *testing.T) {
	repo := newFakeRepo()
	now := time.Now().Unix()
	repo.masters["S1"] = &models.StampMaster{StampID: "S1", ValidFrom: now + 3600}
	repo.masters["S2"] = &models.StampMaster{StampID: "S2", ValidTo: now - 3600}
	svc := NewService(repo, nil, false)

	_, err := svc.Award(context.Background(), "U1", "S1", "GPS")
	if se := serviceErr(t, err); se.Code != "STAMP_NOT_VALID_YET" {
		t.Fatalf("expected STAMP_NOT_VALID_YET, got %+v", se)
	}

	_, err = svc.Award(context.Background(), "U1", "S2", "GPS")
	if se := serviceErr(t, err); se.Code != "STAMP_EXPIRED" {
		t.Fatalf("expected STAMP_EXPIRED, got %+v", se)
	}
}

func TestAwardWindowBoundariesInclusive(t *testing.T) {
	repo := newFakeRepo()
	fixed := time.Unix(1_700_000_000, 0)
	repo.masters["S1"] = &models.StampMaster{
		StampID:   "S1",
		ValidFrom: fixed.Unix(),
		ValidTo:   fixed.Unix(),
	}
	svc := NewService(repo, nil, false)
	svc.now = func() time.Time { return fixed }

	if _, err := svc.Award(context.Background(), "U1", "S1", "GPS"); err != nil {
		t.Fatalf("expected award at the exact boundary second to succeed, got %v", err)
	}
}

func TestAwardInvalidStampType(t *testing.T) {
	repo := newFakeRepo()
	repo.masters["S1"] = &models.StampMaster{StampID: "S1", Type: "QR"}
	svc := NewService(repo, nil, false)

	_, err := svc.Award(context.Background(), "U1", "S1", "GPS")
	if se := serviceErr(t, err); se.Code != "INVALID_STAMP_TYPE" {
		t.Fatalf("expected INVALID_STAMP_TYPE, got %+v", se)
	}
}

func TestAwardTypeMismatchPermissive(t *testing.T) {
	repo := newFakeRepo()
	repo.masters["S1"] = &models.StampMaster{StampID: "S1", Type: "GPS"}
	svc := NewService(repo, nil, false)

	if _, err := svc.Award(context.Background(), "U1", "S1", "IMAGE"); err != nil {
		t.Fatalf("expected permissive mismatch to succeed, got %v", err)
	}
}

func TestAwardTypeMismatchStrict(t *testing.T) {
	repo := newFakeRepo()
	repo.masters["S1"] = &models.StampMaster{StampID: "S1", Type: "GPS"}
	svc := NewService(repo, nil, true)

	_, err := svc.Award(context.Background(), "U1", "S1", "IMAGE")
	se := serviceErr(t, err)
	if se.Code != "STAMP_TYPE_MISMATCH" || se.Status != 409 {
		t.Fatalf("expected STAMP_TYPE_MISMATCH 409, got %+v", se)
	}
}

func TestAwardRepoFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.failMaster = true
	svc := NewService(repo, nil, false)

	_, err := svc.Award(context.Background(), "U1", "S1", "GPS")
	se := serviceErr(t, err)
	if se.Code != "DATABASE_ERROR" || se.Status != 500 {
		t.Fatalf("expected DATABASE_ERROR 500, got %+v", se)
	}
}

func TestVerifyGPS(t *testing.T) {
	repo := newFakeRepo()
	repo.masters["S1"] = &models.StampMaster{
		StampID:  "S1",
		Name:     "Station Plaza",
		Type:     "GPS",
		Location: &models.Location{Lat: 35.6812, Lon: 139.7671, RadiusM: 100},
	}
	svc := NewService(repo, nil, false)

	res, err := svc.VerifyGPS(context.Background(), "S1", 35.6812, 139.7671, 0)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if !res.Within || res.DistanceM != 0 {
		t.Fatalf("expected within at distance 0, got %+v", res)
	}
	if res.Name != "Station Plaza" {
		t.Fatalf("expected stamp name in result, got %q", res.Name)
	}
}

func TestVerifyGPSRejectsBadCoordinates(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, false)

	_, err := svc.VerifyGPS(context.Background(), "S1", 91, 0, 0)
	if se := serviceErr(t, err); se.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected VALIDATION_ERROR, got %+v", se)
	}
}

func TestVerifyGPSNonGPSStamp(t *testing.T) {
	repo := newFakeRepo()
	repo.masters["S1"] = &models.StampMaster{StampID: "S1", Type: "IMAGE"}
	svc := NewService(repo, nil, false)

	_, err := svc.VerifyGPS(context.Background(), "S1", 35.0, 139.0, 0)
	if se := serviceErr(t, err); se.Code != "STAMP_TYPE_MISMATCH" {
		t.Fatalf("expected STAMP_TYPE_MISMATCH, got %+v", se)
	}
}

func TestVerifyGPSMissingLocation(t *testing.T) {
	repo := newFakeRepo()
	repo.masters["S1"] = &models.StampMaster{StampID: "S1", Type: "GPS"}
	svc := NewService(repo, nil, false)

	_, err := svc.VerifyGPS(context.Background(), "S1", 35.0, 139.0, 0)
	if se := serviceErr(t, err); se.Code != "LOCATION_NOT_FOUND" {
		t.Fatalf("expected LOCATION_NOT_FOUND, got %+v", se)
	}
}
