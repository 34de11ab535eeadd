package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	billingapp "github.com/utilityboard/backend/internal/application/billing"
	"github.com/utilityboard/backend/internal/domain/billing"
	"github.com/utilityboard/backend/internal/domain/consumer"
	"github.com/utilityboard/backend/internal/domain/metering"
	"github.com/utilityboard/backend/internal/domain/shared"
	"github.com/utilityboard/backend/internal/domain/shared/valueobject"
	"github.com/utilityboard/backend/internal/domain/tariff"
	"github.com/utilityboard/backend/internal/interfaces/http/dto"
	"github.com/utilityboard/backend/internal/interfaces/http/middleware"
)

// In-memory fakes backing the ledger handlers. The handlers run over the
// real application services, so these tests cover the full
// request-to-response path minus the database.

type fakeConsumerRepository struct {
	consumers map[uuid.UUID]*consumer.Consumer
}

func newFakeConsumerRepository() *fakeConsumerRepository {
	return &fakeConsumerRepository{consumers: make(map[uuid.UUID]*consumer.Consumer)}
}

func (f *fakeConsumerRepository) FindByID(ctx context.Context, id uuid.UUID) (*consumer.Consumer, error) {
	if c, ok := f.consumers[id]; ok {
		return c, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeConsumerRepository) FindByMeterNumber(ctx context.Context, meterNumber string) (*consumer.Consumer, error) {
	for _, c := range f.consumers {
		if c.MeterNumber == meterNumber {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeConsumerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]consumer.Consumer, int64, error) {
	var result []consumer.Consumer
	for _, c := range f.consumers {
		result = append(result, *c)
	}
	return result, int64(len(result)), nil
}

func (f *fakeConsumerRepository) ExistsByMeterNumber(ctx context.Context, meterNumber string) (bool, error) {
	for _, c := range f.consumers {
		if c.MeterNumber == meterNumber {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeConsumerRepository) Save(ctx context.Context, c *consumer.Consumer) error {
	f.consumers[c.ID] = c
	return nil
}

func (f *fakeConsumerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.consumers[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.consumers, id)
	return nil
}

type fakeReadingRepository struct {
	readings map[uuid.UUID]*metering.Reading
}

func newFakeReadingRepository() *fakeReadingRepository {
	return &fakeReadingRepository{readings: make(map[uuid.UUID]*metering.Reading)}
}

func (f *fakeReadingRepository) FindByID(ctx context.Context, id uuid.UUID) (*metering.Reading, error) {
	if r, ok := f.readings[id]; ok {
		return r, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeReadingRepository) FindLatestByConsumer(ctx context.Context, consumerID uuid.UUID) (*metering.Reading, error) {
	var latest *metering.Reading
	for _, r := range f.readings {
		if r.ConsumerID != consumerID {
			continue
		}
		if latest == nil || r.RecordedAt.After(latest.RecordedAt) {
			latest = r
		}
	}
	if latest == nil {
		return nil, shared.ErrNotFound
	}
	return latest, nil
}

func (f *fakeReadingRepository) FindByConsumerAndPeriod(ctx context.Context, consumerID uuid.UUID, period valueobject.Period) (*metering.Reading, error) {
	for _, r := range f.readings {
		if r.ConsumerID == consumerID && r.Period.Equal(period) {
			return r, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeReadingRepository) FindAll(ctx context.Context, filter shared.Filter) ([]metering.Reading, int64, error) {
	var result []metering.Reading
	for _, r := range f.readings {
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RecordedAt.After(result[j].RecordedAt)
	})
	return result, int64(len(result)), nil
}

func (f *fakeReadingRepository) Save(ctx context.Context, r *metering.Reading) error {
	for _, existing := range f.readings {
		if existing.ID != r.ID && existing.ConsumerID == r.ConsumerID && existing.Period.Equal(r.Period) {
			return shared.ErrConflict
		}
	}
	f.readings[r.ID] = r
	return nil
}

func (f *fakeReadingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.readings[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.readings, id)
	return nil
}

type fakeBillRepository struct {
	bills map[uuid.UUID]*billing.Bill
}

func newFakeBillRepository() *fakeBillRepository {
	return &fakeBillRepository{bills: make(map[uuid.UUID]*billing.Bill)}
}

func (f *fakeBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	if b, ok := f.bills[id]; ok {
		return b, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeBillRepository) FindByReadingID(ctx context.Context, readingID uuid.UUID) (*billing.Bill, error) {
	for _, b := range f.bills {
		if b.ReadingID == readingID {
			return b, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeBillRepository) FindAll(ctx context.Context, filter billing.ListFilter) ([]billing.Bill, int64, error) {
	var result []billing.Bill
	for _, b := range f.bills {
		if filter.Month != nil && b.Period.Month != *filter.Month {
			continue
		}
		if filter.Year != nil && b.Period.Year != *filter.Year {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if filter.ConsumerID != nil && b.ConsumerID != *filter.ConsumerID {
			continue
		}
		if filter.GeneratedBy != nil && b.GeneratedBy != *filter.GeneratedBy {
			continue
		}
		result = append(result, *b)
	}
	return result, int64(len(result)), nil
}

func (f *fakeBillRepository) FindByConsumer(ctx context.Context, consumerID uuid.UUID) ([]billing.Bill, error) {
	var result []billing.Bill
	for _, b := range f.bills {
		if b.ConsumerID == consumerID {
			result = append(result, *b)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Period.Year > result[j].Period.Year
	})
	return result, nil
}

func (f *fakeBillRepository) Save(ctx context.Context, b *billing.Bill) error {
	for _, existing := range f.bills {
		if existing.ID != b.ID && existing.ReadingID == b.ReadingID {
			return shared.ErrConflict
		}
	}
	f.bills[b.ID] = b
	return nil
}

func (f *fakeBillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.bills[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.bills, id)
	return nil
}

func (f *fakeBillRepository) DeletePending(ctx context.Context, id uuid.UUID) error {
	b, ok := f.bills[id]
	if !ok {
		return shared.ErrNotFound
	}
	if err := b.Deletable(); err != nil {
		return err
	}
	delete(f.bills, id)
	return nil
}

type fakePlanRepository struct {
	plans map[uuid.UUID]*tariff.Plan
}

func newFakePlanRepository() *fakePlanRepository {
	return &fakePlanRepository{plans: make(map[uuid.UUID]*tariff.Plan)}
}

func (f *fakePlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*tariff.Plan, error) {
	if p, ok := f.plans[id]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakePlanRepository) FindActive(ctx context.Context) (*tariff.Plan, error) {
	for _, p := range f.plans {
		if p.IsActive {
			return p, nil
		}
	}
	return nil, shared.ErrNoActiveTariff
}

func (f *fakePlanRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tariff.Plan, int64, error) {
	var result []tariff.Plan
	for _, p := range f.plans {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].IsActive && !result[j].IsActive
	})
	return result, int64(len(result)), nil
}

func (f *fakePlanRepository) Save(ctx context.Context, p *tariff.Plan) error {
	f.plans[p.ID] = p
	return nil
}

func (f *fakePlanRepository) ActivateExclusive(ctx context.Context, id uuid.UUID) (*tariff.Plan, error) {
	target, ok := f.plans[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	for _, p := range f.plans {
		if p.ID != id && p.IsActive {
			p.Deactivate()
		}
	}
	if !target.IsActive {
		target.Activate()
	}
	return target, nil
}

type ledgerHandlerFixture struct {
	consumerRepo *fakeConsumerRepository
	readingRepo  *fakeReadingRepository
	billRepo     *fakeBillRepository
	planRepo     *fakePlanRepository
	router       *gin.Engine
}

func newLedgerHandlerFixture() *ledgerHandlerFixture {
	consumerRepo := newFakeConsumerRepository()
	readingRepo := newFakeReadingRepository()
	billRepo := newFakeBillRepository()
	planRepo := newFakePlanRepository()

	service := billingapp.NewLedgerService(
		consumerRepo, readingRepo, billRepo, planRepo,
		billingapp.NewNoOpTransactionScope(readingRepo, billRepo), nil)

	router := gin.New()
	router.Use(middleware.ActorIdentity())
	api := router.Group("/api/v1")
	NewBillHandler(service).RegisterRoutes(api)
	NewReadingHandler(service).RegisterRoutes(api)

	return &ledgerHandlerFixture{
		consumerRepo: consumerRepo,
		readingRepo:  readingRepo,
		billRepo:     billRepo,
		planRepo:     planRepo,
		router:       router,
	}
}

func (f *ledgerHandlerFixture) seedConsumer(t *testing.T) *consumer.Consumer {
	t.Helper()
	cons, err := consumer.NewConsumer("Asha Rao", "9876543210", "12B", "Lakeview", "Pune", "Maharashtra", "411001", "MTR-0042")
	require.NoError(t, err)
	require.NoError(t, f.consumerRepo.Save(context.Background(), cons))
	return cons
}

func (f *ledgerHandlerFixture) seedActivePlan(t *testing.T) *tariff.Plan {
	t.Helper()
	plan, err := tariff.NewPlan(decimal.RequireFromString("8.5"), decimal.RequireFromString("500"))
	require.NoError(t, err)
	plan.Activate()
	require.NoError(t, f.planRepo.Save(context.Background(), plan))
	return plan
}

// generateBill posts a March 2024 reading of 150 units for MTR-0042 and
// returns the created pair.
func (f *ledgerHandlerFixture) generateBill(t *testing.T, actorID uuid.UUID) billingapp.GenerateBillResponse {
	t.Helper()
	w := doRequest(f.router, http.MethodPost, "/api/v1/bills", gin.H{
		"meter_number":    "MTR-0042",
		"month":           "March",
		"year":            2024,
		"current_reading": "150",
	}, actorID.String())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var result billingapp.GenerateBillResponse
	require.NoError(t, json.Unmarshal(raw, &result))
	return result
}

func doRequest(router *gin.Engine, method, path string, body any, actorID string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if actorID != "" {
		req.Header.Set(middleware.ActorHeader, actorID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *dto.ErrorInfo {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return resp.Error
}

func TestBillHandler_Generate(t *testing.T) {
	f := newLedgerHandlerFixture()
	f.seedConsumer(t)
	f.seedActivePlan(t)
	actorID := uuid.New()

	result := f.generateBill(t, actorID)

	assert.Equal(t, 3, result.Bill.Month)
	assert.Equal(t, 2024, result.Bill.Year)
	assert.Equal(t, "150", result.Bill.UnitsConsumed.String())
	assert.Equal(t, "1275", result.Bill.EnergyCharge.String())
	assert.Equal(t, "500", result.Bill.FixedCharge.String())
	assert.Equal(t, "1775", result.Bill.TotalAmount.String())
	assert.Equal(t, "pending", result.Bill.Status)
	assert.Equal(t, actorID, result.Bill.GeneratedBy)
	assert.Equal(t, result.Reading.ID, result.Bill.ReadingID)
	assert.True(t, result.Reading.PreviousReading.IsZero())
}

func TestBillHandler_Generate_RequiresActor(t *testing.T) {
	f := newLedgerHandlerFixture()
	f.seedConsumer(t)
	f.seedActivePlan(t)

	w := doRequest(f.router, http.MethodPost, "/api/v1/bills", gin.H{
		"meter_number":    "MTR-0042",
		"month":           "March",
		"year":            2024,
		"current_reading": "150",
	}, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	errInfo := decodeError(t, w)
	assert.Equal(t, "Operator identity required", errInfo.Message)
	assert.Empty(t, f.billRepo.bills)
}

func TestBillHandler_Generate_InvalidBody(t *testing.T) {
	f := newLedgerHandlerFixture()
	f.seedConsumer(t)
	f.seedActivePlan(t)

	// meter_number is required
	w := doRequest(f.router, http.MethodPost, "/api/v1/bills", gin.H{
		"month":           "March",
		"year":            2024,
		"current_reading": "150",
	}, uuid.New().String())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeBadRequest, decodeError(t, w).Code)
}

func TestBillHandler_Generate_UnknownMeter(t *testing.T) {
	f := newLedgerHandlerFixture()
	f.seedActivePlan(t)

	w := doRequest(f.router, http.MethodPost, "/api/v1/bills", gin.H{
		"meter_number":    "MTR-9999",
		"month":           "March",
		"year":            2024,
		"current_reading": "150",
	}, uuid.New().String())

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Consumer with meter number MTR-9999 not found", decodeError(t, w).Message)
}

func TestBillHandler_Generate_NoActiveTariff(t *testing.T) {
	f := newLedgerHandlerFixture()
	f.seedConsumer(t)

	w := doRequest(f.router, http.MethodPost, "/api/v1/bills", gin.H{
		"meter_number":    "MTR-0042",
		"month":           "March",
		"year":            2024,
		"current_reading": "150",
	}, uuid.New().String())

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, dto.ErrCodeNoActiveTariff, decodeError(t, w).Code)
}

func TestBillHandler_Generate_DuplicatePeriod(t *testing.T) {
	f := newLedgerHandlerFixture()
	f.seedConsumer(t)
	f.seedActivePlan(t)
	f.generateBill(t, uuid.New())

	w := doRequest(f.router, http.MethodPost, "/api/v1/bills", gin.H{
		"meter_number":    "MTR-0042",
		"month":           "March",
		"year":            2024,
		"current_reading": "200",
	}, uuid.New().String())

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Reading already recorded for Mar 2024", decodeError(t, w).Message)
}

func TestBillHandler_Get(t *testing.T) {
	f := newLedgerHandlerFixture()
	f.seedConsumer(t)
	plan := f.seedActivePlan(t)
	created := f.generateBill(t, uuid.New())

	w := doRequest(f.router, http.MethodGet, "/api/v1/bills/"+created.Bill.ID.String(), nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var detail billingapp.BillDetailResponse
	require.NoError(t, json.Unmarshal(raw, &detail))

	assert.Equal(t, created.Bill.ID, detail.Bill.ID)
	assert.Equal(t, plan.ID, detail.Bill.TariffPlanID)
	require.NotNil(t, detail.Reading)
	assert.Equal(t, created.Reading.ID, detail.Reading.ID)
	require.NotNil(t, detail.Consumer)
	assert.Equal(t, "MTR-0042", detail.Consumer.MeterNumber)
	require.NotNil(t, detail.Tariff)
	assert.True(t, detail.Tariff.RatePerUnit.Equal(decimal.RequireFromString("8.5")))
	assert.True(t, detail.Tariff.FixedCharge.Equal(decimal.RequireFromString("500")))
}

func TestBillHandler_Get_TariffSurvivesPlanChange(t *testing.T) {
	// The detail response reports the plan the bill was generated under,
	// even after a different plan becomes active.
	f := newLedgerHandlerFixture()
	f.seedConsumer(t)
	plan := f.seedActivePlan(t)
	created := f.generateBill(t, uuid.New())

	newer, err := tariff.NewPlan(decimal.RequireFromString("12"), decimal.RequireFromString("750"))
	require.NoError(t, err)
	require.NoError(t, f.planRepo.Save(context.Background(), newer))
	_, err = f.planRepo.ActivateExclusive(context.Background(), newer.ID)
	require.NoError(t, err)

	w := doRequest(f.router, http.MethodGet, "/api/v1/bills/"+created.Bill.ID.String(), nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var detail billingapp.BillDetailResponse
	require.NoError(t, json.Unmarshal(raw, &detail))

	assert.Equal(t, plan.ID, detail.Bill.TariffPlanID)
	require.NotNil(t, detail.Tariff)
	assert.True(t, detail.Tariff.RatePerUnit.Equal(decimal.RequireFromString("8.5")))
}

func TestBillHandler_Get_InvalidID(t *testing.T) {
	f := newLedgerHandlerFixture()

	w := doRequest(f.router, http.MethodGet, "/api/v1/bills/not-a-uuid", nil, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid bill ID", decodeError(t, w).Message)
}

func TestBillHandler_Get_NotFound(t *testing.T) {
	f := newLedgerHandlerFixture()

	w := doRequest(f.router, http.MethodGet, "/api/v1/bills/"+uuid.New().String(), nil, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Bill not found", decodeError(t, w).Message)
}

func TestBillHandler_UpdateStatus(t *testing.T) {
	f := newLedgerHandlerFixture()
	f.seedConsumer(t)
	f.seedActivePlan(t)
	created := f.generateBill(t, uuid.New())

	w := doRequest(f.router, http.MethodPatch, "/api/v1/bills/"+created.Bill.ID.String()+"/status",
		gin.H{"status": "paid"}, uuid.New().String())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var bill billingapp.BillResponse
	require.NoError(t, json.Unmarshal(raw, &bill))

	assert.Equal(t, "paid", bill.Status)
	assert.NotNil(t, bill.PaidAt)
}

func TestBillHandler_UpdateStatus_RequiresActor(t *testing.T) {
	f := newLedgerHandlerFixture()
	f.seedConsumer(t)
	f.seedActivePlan(t)
	created := f.generateBill(t, uuid.New())

	w := doRequest(f.router, http.MethodPatch, "/api/v1/bills/"+created.Bill.ID.String()+"/status",
		gin.H{"status": "paid"}, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBillHandler_UpdateStatus_Terminal(t *testing.T) {
	f := newLedgerHandlerFixture()
	f.seedConsumer(t)
	f.seedActivePlan(t)
	created := f.generateBill(t, uuid.New())
	actorID := uuid.New().String()

	w := doRequest(f.router, http.MethodPatch, "/api/v1/bills/"+created.Bill.ID.String()+"/status",
		gin.H{"status": "paid"}, actorID)
	require.Equal(t, http.StatusOK, w.Code)

	// Paid is terminal
	w = doRequest(f.router, http.MethodPatch, "/api/v1/bills/"+created.Bill.ID.String()+"/status",
		gin.H{"status": "overdue"}, actorID)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, dto.ErrCodeInvalidState, decodeError(t, w).Code)
}

func TestBillHandler_UpdateStatus_InvalidStatus(t *testing.T) {
	f := newLedgerHandlerFixture()
	f.seedConsumer(t)
	f.seedActivePlan(t)
	created := f.generateBill(t, uuid.New())

	w := doRequest(f.router, http.MethodPatch, "/api/v1/bills/"+created.Bill.ID.String()+"/status",
		gin.H{"status": "cancelled"}, uuid.New().String())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeValidation, decodeError(t, w).Code)
}

func TestBillHandler_Delete(t *testing.T) {
	f := newLedgerHandlerFixture()
	f.seedConsumer(t)
	f.seedActivePlan(t)
	created := f.generateBill(t, uuid.New())

	w := doRequest(f.router, http.MethodDelete, "/api/v1/bills/"+created.Bill.ID.String(), nil, "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, f.billRepo.bills)
	assert.Empty(t, f.readingRepo.readings, "the owned reading goes with the bill")
}

func TestBillHandler_Delete_PaidRefused(t *testing.T) {
	f := newLedgerHandlerFixture()
	f.seedConsumer(t)
	f.seedActivePlan(t)
	created := f.generateBill(t, uuid.New())

	w := doRequest(f.router, http.MethodPatch, "/api/v1/bills/"+created.Bill.ID.String()+"/status",
		gin.H{"status": "paid"}, uuid.New().String())
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(f.router, http.MethodDelete, "/api/v1/bills/"+created.Bill.ID.String(), nil, "")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "Cannot delete bill as it is already paid", decodeError(t, w).Message)
	assert.Len(t, f.billRepo.bills, 1)
	assert.Len(t, f.readingRepo.readings, 1)
}

func TestBillHandler_List(t *testing.T) {
	f := newLedgerHandlerFixture()
	f.seedConsumer(t)
	f.seedActivePlan(t)
	f.generateBill(t, uuid.New())

	w := doRequest(f.router, http.MethodGet, "/api/v1/bills?month=March&year=2024&status=pending", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)
}

func TestBillHandler_List_InvalidFilters(t *testing.T) {
	f := newLedgerHandlerFixture()

	w := doRequest(f.router, http.MethodGet, "/api/v1/bills?month=Juvember", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(f.router, http.MethodGet, "/api/v1/bills?status=cancelled", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(f.router, http.MethodGet, "/api/v1/bills?year=abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid year", decodeError(t, w).Message)
}

func TestBillHandler_ListMine(t *testing.T) {
	f := newLedgerHandlerFixture()
	f.seedConsumer(t)
	f.seedActivePlan(t)
	generator := uuid.New()
	f.generateBill(t, generator)

	w := doRequest(f.router, http.MethodGet, "/api/v1/bills/mine", nil, generator.String())
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)

	// Another operator sees none of them
	w = doRequest(f.router, http.MethodGet, "/api/v1/bills/mine", nil, uuid.New().String())
	require.Equal(t, http.StatusOK, w.Code)
	resp = dto.Response{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(0), resp.Meta.Total)

	w = doRequest(f.router, http.MethodGet, "/api/v1/bills/mine", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBillHandler_ConsumerHistory(t *testing.T) {
	f := newLedgerHandlerFixture()
	cons := f.seedConsumer(t)
	f.seedActivePlan(t)
	f.generateBill(t, uuid.New())

	w := doRequest(f.router, http.MethodGet, "/api/v1/consumers/"+cons.ID.String()+"/bills", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var bills []billingapp.BillResponse
	require.NoError(t, json.Unmarshal(raw, &bills))
	assert.Len(t, bills, 1)
}

func TestBillHandler_ConsumerHistory_UnknownConsumer(t *testing.T) {
	f := newLedgerHandlerFixture()

	w := doRequest(f.router, http.MethodGet, "/api/v1/consumers/"+uuid.New().String()+"/bills", nil, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Consumer not found", decodeError(t, w).Message)
}
