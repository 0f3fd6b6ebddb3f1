package handlers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/errors"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/notify"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/server/http/dto"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/server/http/middleware"
	testhelpers "github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var (
	student = model.Actor{UserID: "student-1", Role: model.RoleStudent}
	crew    = model.Actor{UserID: "crew-1", Role: model.RoleCrew, CanteenID: "canteen-1"}
)

func asActor(actor model.Actor) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.ActorContextKey, actor)
	}
}

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

func performRequest(t *testing.T, method, pattern, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, pattern, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCurrentActor(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentActor(c); got != (model.Actor{}) {
		t.Fatalf("expected zero actor when not set, got %+v", got)
	}

	c.Set(middleware.ActorContextKey, crew)
	if got := CurrentActor(c); got != crew {
		t.Fatalf("expected %+v, got %+v", crew, got)
	}
}

func TestStatusFor(t *testing.T) {
	tests := map[error]int{
		domainErrors.ErrNotFound:                  http.StatusNotFound,
		domainErrors.ErrUnauthorized:              http.StatusForbidden,
		domainErrors.ErrInvalidCredentials:        http.StatusUnauthorized,
		domainErrors.ErrPaymentVerificationFailed: http.StatusPaymentRequired,
		domainErrors.ErrInvalidTransition:         http.StatusConflict,
		domainErrors.ErrStatusConflict:            http.StatusConflict,
		domainErrors.ErrAlreadyExists:             http.StatusConflict,
		domainErrors.ErrInvalidOrder:              http.StatusUnprocessableEntity,
		domainErrors.ErrInvalidTarget:             http.StatusUnprocessableEntity,
		domainErrors.ErrCapacityExceeded:          http.StatusUnprocessableEntity,
		domainErrors.ErrInvalidMenuItem:           http.StatusUnprocessableEntity,
		domainErrors.ErrTokenUnavailable:          http.StatusServiceUnavailable,
		errors.New("boom"):                        http.StatusInternalServerError,
	}
	for err, want := range tests {
		if got := statusFor(fmt.Errorf("wrapped: %w", err)); got != want {
			t.Errorf("%v: expected %d, got %d", err, want, got)
		}
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	body, _ := json.Marshal(dto.RegisterRequest{RollNumber: "cb.en.u4cse21001", Name: "Asha", Password: "secret"})
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{RegisterFn: func(ctx context.Context, roll, name, password string) (string, error) {
		if roll != "cb.en.u4cse21001" || name != "Asha" || password != "secret" {
			t.Fatalf("unexpected registration passed to facade: %q %q %q", roll, name, password)
		}
		return "session-token", nil
	}})
	resp := performRequest(t, http.MethodPost, "/register", "/register", handler.Register, nil, body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Authorization"); got != "Bearer session-token" {
		t.Fatalf("unexpected authorization header %q", got)
	}

	var decoded dto.AuthResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil || decoded.Token != "session-token" {
		t.Fatalf("unexpected body %s (%v)", resp.Body.String(), err)
	}

	result := resp.Result()
	t.Cleanup(func() {
		_ = result.Body.Close()
	})
	found := false
	for _, cookie := range result.Cookies() {
		if cookie.Name == "campusbites_token" && cookie.Value == "session-token" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected auth cookie named campusbites_token")
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	fail := func(err error) testhelpers.AuthFacadeStub {
		return testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string) (string, error) {
			return "", err
		}}
	}
	valid := []byte(`{"roll_number":"a","name":"b","password":"c"}`)
	tests := []struct {
		name   string
		facade testhelpers.AuthFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "missing credentials", body: []byte(`{}`), facade: fail(domainErrors.ErrInvalidCredentials), status: http.StatusBadRequest},
		{name: "already exists", body: valid, facade: fail(domainErrors.ErrAlreadyExists), status: http.StatusConflict},
		{name: "internal", body: valid, facade: fail(errors.New("boom")), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(tt.facade).Register, nil, tt.body, jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	body, _ := json.Marshal(dto.LoginRequest{Login: "crew@campus.edu", Password: "pass"})
	resp := performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(testhelpers.AuthFacadeStub{}).Login, nil, body, jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	invalid := testhelpers.AuthFacadeStub{LoginFn: func(context.Context, string, string) (string, error) {
		return "", domainErrors.ErrInvalidCredentials
	}}
	resp = performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(invalid).Login, nil, body, jsonHeaders)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(invalid).Login, nil, []byte("oops"), jsonHeaders)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestAuthHandlerMe(t *testing.T) {
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{})
	resp := performRequest(t, http.MethodGet, "/auth/me", "/auth/me", handler.Me, asActor(crew), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded dto.UserResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if decoded.UserID != crew.UserID || decoded.Role != string(model.RoleCrew) || decoded.CanteenID != "canteen-1" {
		t.Fatalf("unexpected user %+v", decoded)
	}
	if strings.Contains(resp.Body.String(), "hash:") {
		t.Fatalf("password hash leaked: %s", resp.Body.String())
	}

	missing := NewAuthHandler(testhelpers.AuthFacadeStub{MeFn: func(context.Context, model.Actor) (*model.User, error) {
		return nil, domainErrors.ErrNotFound
	}})
	resp = performRequest(t, http.MethodGet, "/auth/me", "/auth/me", missing.Me, asActor(student), nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestAuthHandlerLogout(t *testing.T) {
	resp := performRequest(t, http.MethodPost, "/logout", "/logout", NewAuthHandler(testhelpers.AuthFacadeStub{}).Logout, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	cookie := resp.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, "campusbites_token=") || !strings.Contains(cookie, "Max-Age=0") {
		t.Fatalf("expected expired auth cookie, got %q", cookie)
	}
}

func TestOrderHandlerCreate(t *testing.T) {
	var gotStudent string
	facade := testhelpers.OrderFacadeStub{CreateFn: func(ctx context.Context, studentID, canteenID string, items []model.OrderItem, total float64) (*model.Order, error) {
		gotStudent = studentID
		if canteenID != "canteen-1" || len(items) != 1 || items[0].PriceAtOrder != 40 || total != 80 {
			t.Fatalf("unexpected order input %s %v %v", canteenID, items, total)
		}
		return &model.Order{OrderID: "order_1", TokenNumber: 1234567, TotalAmount: total, ExpiresAt: time.Unix(600, 0).UTC()}, nil
	}}
	body := []byte(`{"canteen_id":"canteen-1","items":[{"item_id":"i1","item_name":"Dosa","quantity":2,"price_at_order":40}],"total_amount":80}`)
	resp := performRequest(t, http.MethodPost, "/orders", "/orders", NewOrderHandler(facade).Create, asActor(student), body, jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if gotStudent != student.UserID {
		t.Fatalf("expected order placed for %s, got %s", student.UserID, gotStudent)
	}

	var decoded dto.CreateOrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.OrderID != "order_1" || decoded.TokenNumber != 1234567 || decoded.Amount != 80 {
		t.Fatalf("unexpected response %+v", decoded)
	}
}

func TestOrderHandlerCreateFailures(t *testing.T) {
	fail := func(err error) testhelpers.OrderFacadeStub {
		return testhelpers.OrderFacadeStub{CreateFn: func(context.Context, string, string, []model.OrderItem, float64) (*model.Order, error) {
			return nil, err
		}}
	}
	valid := []byte(`{"canteen_id":"c","items":[],"total_amount":0}`)
	tests := []struct {
		name   string
		facade testhelpers.OrderFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("{"), status: http.StatusBadRequest},
		{name: "invalid order", body: valid, facade: fail(domainErrors.ErrInvalidOrder), status: http.StatusUnprocessableEntity},
		{name: "tokens exhausted", body: valid, facade: fail(domainErrors.ErrTokenUnavailable), status: http.StatusServiceUnavailable},
		{name: "internal", body: valid, facade: fail(errors.New("boom")), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/orders", "/orders", NewOrderHandler(tt.facade).Create, asActor(student), tt.body, jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestOrderHandlerVerifyPayment(t *testing.T) {
	facade := testhelpers.OrderFacadeStub{ConfirmFn: func(ctx context.Context, orderID, paymentID, signature string, actor model.Actor) (*model.Order, error) {
		if orderID != "order_1" || paymentID != "pay_1" {
			t.Fatalf("unexpected confirm input %s %s", orderID, paymentID)
		}
		if actor.UserID != student.UserID {
			return nil, domainErrors.ErrUnauthorized
		}
		if signature != "valid" {
			return nil, domainErrors.ErrPaymentVerificationFailed
		}
		return &model.Order{OrderID: orderID, Status: model.OrderStatusRequested}, nil
	}}
	handler := NewOrderHandler(facade)

	resp := performRequest(t, http.MethodPost, "/orders/:id/verify-payment", "/orders/order_1/verify-payment", handler.VerifyPayment, asActor(student),
		[]byte(`{"payment_id":"pay_1","signature":"valid"}`), jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded dto.StatusResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil || decoded.Status != "REQUESTED" {
		t.Fatalf("unexpected body %s (%v)", resp.Body.String(), err)
	}

	resp = performRequest(t, http.MethodPost, "/orders/:id/verify-payment", "/orders/order_1/verify-payment", handler.VerifyPayment, asActor(student),
		[]byte(`{"payment_id":"pay_1","signature":"forged"}`), jsonHeaders)
	if resp.Code != http.StatusPaymentRequired {
		t.Fatalf("expected status 402, got %d", resp.Code)
	}

	stranger := model.Actor{UserID: "student-9", Role: model.RoleStudent}
	resp = performRequest(t, http.MethodPost, "/orders/:id/verify-payment", "/orders/order_1/verify-payment", handler.VerifyPayment, asActor(stranger),
		[]byte(`{"payment_id":"pay_1","signature":"valid"}`), jsonHeaders)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}
}

func TestOrderHandlerMine(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/orders/my", "/orders/my", NewOrderHandler(testhelpers.OrderFacadeStub{}).Mine, asActor(student), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded []dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(decoded) != 1 || decoded[0].StudentID != student.UserID {
		t.Fatalf("unexpected orders %+v", decoded)
	}
}

func TestOrderHandlerSetStatus(t *testing.T) {
	var gotActor model.Actor
	facade := testhelpers.OrderFacadeStub{SetFn: func(ctx context.Context, orderID string, status model.OrderStatus, actor model.Actor) (*model.Order, error) {
		gotActor = actor
		if status == model.OrderStatusCompleted {
			return nil, domainErrors.ErrInvalidTransition
		}
		return &model.Order{OrderID: orderID, Status: status}, nil
	}}
	handler := NewOrderHandler(facade)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{name: "forward", body: `{"status":"PREPARING"}`, status: http.StatusOK},
		{name: "unknown status", body: `{"status":"EATEN"}`, status: http.StatusBadRequest},
		{name: "rejected transition", body: `{"status":"COMPLETED"}`, status: http.StatusConflict},
		{name: "bad json", body: `[`, status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPatch, "/orders/:id/status", "/orders/order_1/status", handler.SetStatus, asActor(crew), []byte(tt.body), jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
	if gotActor != crew {
		t.Fatalf("expected crew actor passed through, got %+v", gotActor)
	}
}

func TestOrderHandlerPending(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{PendingFn: func(ctx context.Context, canteenID string, actor model.Actor) ([]model.Order, error) {
		if canteenID != actor.CanteenID {
			return nil, domainErrors.ErrUnauthorized
		}
		return []model.Order{{OrderID: "order_1", CanteenID: canteenID}}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/orders/pending/:canteen_id", "/orders/pending/canteen-1", handler.Pending, asActor(crew), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodGet, "/orders/pending/:canteen_id", "/orders/pending/canteen-2", handler.Pending, asActor(crew), nil, nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}
}

func TestOrderHandlerPriority(t *testing.T) {
	var gotThreshold time.Duration
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{PriorityFn: func(ctx context.Context, canteenID string, threshold time.Duration, actor model.Actor) ([]model.Order, error) {
		gotThreshold = threshold
		return []model.Order{{OrderID: "order_old", CanteenID: canteenID}}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/orders/priority/:canteen_id", "/orders/priority/canteen-1?threshold_minutes=20", handler.Priority, asActor(crew), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if gotThreshold != 20*time.Minute {
		t.Fatalf("expected 20m threshold, got %s", gotThreshold)
	}

	resp = performRequest(t, http.MethodGet, "/orders/priority/:canteen_id", "/orders/priority/canteen-1", handler.Priority, asActor(crew), nil, nil)
	if resp.Code != http.StatusOK || gotThreshold != 0 {
		t.Fatalf("expected default threshold, got %d %s", resp.Code, gotThreshold)
	}

	resp = performRequest(t, http.MethodGet, "/orders/priority/:canteen_id", "/orders/priority/canteen-1?threshold_minutes=-5", handler.Priority, asActor(crew), nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestOrderHandlerResolveToken(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{ResolveFn: func(ctx context.Context, token int, actor model.Actor) (*model.Order, error) {
		if token != 1234567 {
			return nil, domainErrors.ErrNotFound
		}
		return &model.Order{OrderID: "order_1", TokenNumber: token, Status: model.OrderStatusReady}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/orders/token/:token", "/orders/token/1234567", handler.ResolveToken, asActor(crew), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil || decoded.TokenNumber != 1234567 {
		t.Fatalf("unexpected body %s (%v)", resp.Body.String(), err)
	}

	resp = performRequest(t, http.MethodGet, "/orders/token/:token", "/orders/token/7654321", handler.ResolveToken, asActor(crew), nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/orders/token/:token", "/orders/token/abc", handler.ResolveToken, asActor(crew), nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestOrderHandlerGet(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{OrderFn: func(ctx context.Context, orderID string, actor model.Actor) (*model.Order, error) {
		if orderID != "order_1" {
			return nil, domainErrors.ErrNotFound
		}
		if actor.Role == model.RoleStudent && actor.UserID != "student-1" {
			return nil, domainErrors.ErrUnauthorized
		}
		return &model.Order{OrderID: orderID, StudentID: "student-1", CanteenID: "canteen-1", Status: model.OrderStatusPreparing}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/orders/:id", "/orders/order_1", handler.Get, asActor(student), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if strings.Contains(resp.Body.String(), "allowed_next") {
		t.Fatalf("students must not see staff transitions: %s", resp.Body.String())
	}

	resp = performRequest(t, http.MethodGet, "/orders/:id", "/orders/order_1", handler.Get, asActor(crew), nil, nil)
	var decoded dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if strings.Join(decoded.AllowedNext, ",") != "READY,CANCELLED" {
		t.Fatalf("expected READY or CANCELLED next, got %v", decoded.AllowedNext)
	}

	stranger := model.Actor{UserID: "student-2", Role: model.RoleStudent}
	resp = performRequest(t, http.MethodGet, "/orders/:id", "/orders/order_1", handler.Get, asActor(stranger), nil, nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/orders/:id", "/orders/order_9", handler.Get, asActor(student), nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestOrderHandlerQueueListsAllowedNext(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{PendingFn: func(ctx context.Context, canteenID string, actor model.Actor) ([]model.Order, error) {
		return []model.Order{
			{OrderID: "order_1", CanteenID: canteenID, Status: model.OrderStatusRequested},
			{OrderID: "order_2", CanteenID: canteenID, Status: model.OrderStatusCompleted},
		}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/orders/pending/:canteen_id", "/orders/pending/canteen-1", handler.Pending, asActor(crew), nil, nil)
	var decoded []dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil || len(decoded) != 2 {
		t.Fatalf("unexpected body %s (%v)", resp.Body.String(), err)
	}
	want := []string{string(model.OrderStatusPreparing), string(model.OrderStatusCancelled)}
	if strings.Join(decoded[0].AllowedNext, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, decoded[0].AllowedNext)
	}
	if len(decoded[1].AllowedNext) != 0 {
		t.Fatalf("completed orders have no next status, got %v", decoded[1].AllowedNext)
	}
}

func TestMenuHandlerReads(t *testing.T) {
	handler := NewMenuHandler(testhelpers.MenuFacadeStub{})

	resp := performRequest(t, http.MethodGet, "/canteens", "/canteens", handler.Canteens, nil, nil, nil)
	var canteens []model.Canteen
	if err := json.Unmarshal(resp.Body.Bytes(), &canteens); err != nil || len(canteens) != 1 {
		t.Fatalf("unexpected body %s (%v)", resp.Body.String(), err)
	}

	resp = performRequest(t, http.MethodGet, "/menu/:canteen_id", "/menu/canteen-2", handler.Menu, nil, nil, nil)
	var items []model.MenuItem
	if err := json.Unmarshal(resp.Body.Bytes(), &items); err != nil || len(items) != 1 || items[0].CanteenID != "canteen-2" {
		t.Fatalf("unexpected body %s (%v)", resp.Body.String(), err)
	}

	resp = performRequest(t, http.MethodGet, "/menu/item/:item_id", "/menu/item/item-7", handler.Item, nil, nil, nil)
	var item model.MenuItem
	if err := json.Unmarshal(resp.Body.Bytes(), &item); err != nil || item.ItemID != "item-7" {
		t.Fatalf("unexpected body %s (%v)", resp.Body.String(), err)
	}

	empty := NewMenuHandler(testhelpers.MenuFacadeStub{
		CanteensFn: func(context.Context) ([]model.Canteen, error) { return nil, nil },
		MenuFn:     func(context.Context, string) ([]model.MenuItem, error) { return nil, nil },
		ItemFn: func(context.Context, string) (*model.MenuItem, error) {
			return nil, domainErrors.ErrNotFound
		},
	})
	resp = performRequest(t, http.MethodGet, "/canteens", "/canteens", empty.Canteens, nil, nil, nil)
	if resp.Code != http.StatusOK || strings.TrimSpace(resp.Body.String()) != "[]" {
		t.Fatalf("expected empty list, got %d %s", resp.Code, resp.Body.String())
	}
	resp = performRequest(t, http.MethodGet, "/menu/:canteen_id", "/menu/canteen-9", empty.Menu, nil, nil, nil)
	if resp.Code != http.StatusOK || strings.TrimSpace(resp.Body.String()) != "[]" {
		t.Fatalf("expected empty list, got %d %s", resp.Code, resp.Body.String())
	}
	resp = performRequest(t, http.MethodGet, "/menu/item/:item_id", "/menu/item/item-9", empty.Item, nil, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestMenuHandlerCreate(t *testing.T) {
	manager := model.Actor{UserID: "manager-1", Role: model.RoleManagement}
	var got model.MenuItem
	handler := NewMenuHandler(testhelpers.MenuFacadeStub{CreateItemFn: func(ctx context.Context, item model.MenuItem, actor model.Actor) (*model.MenuItem, error) {
		if actor.Role != model.RoleManagement {
			return nil, domainErrors.ErrUnauthorized
		}
		if item.Name == "" {
			return nil, domainErrors.ErrInvalidMenuItem
		}
		got = item
		item.ItemID = "item_new"
		return &item, nil
	}})

	body, _ := json.Marshal(dto.CreateMenuItemRequest{Name: "Sprouts", CanteenID: "canteen-1", Category: "salads", Price: 35, Protein: 11, StockQty: 8})
	resp := performRequest(t, http.MethodPost, "/menu", "/menu", handler.Create, asActor(manager), body, jsonHeaders)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if got.Category != "salads" || got.StockQty != 8 || got.Protein != 11 {
		t.Fatalf("request not mapped onto item: %+v", got)
	}

	resp = performRequest(t, http.MethodPost, "/menu", "/menu", handler.Create, asActor(crew), body, jsonHeaders)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}

	nameless, _ := json.Marshal(dto.CreateMenuItemRequest{CanteenID: "canteen-1", Price: 35})
	resp = performRequest(t, http.MethodPost, "/menu", "/menu", handler.Create, asActor(manager), nameless, jsonHeaders)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPost, "/menu", "/menu", handler.Create, asActor(manager), []byte("{"), jsonHeaders)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestMenuHandlerUpdate(t *testing.T) {
	handler := NewMenuHandler(testhelpers.MenuFacadeStub{UpdateItemFn: func(ctx context.Context, itemID string, update model.MenuItemUpdate, actor model.Actor) (*model.MenuItem, error) {
		if !actor.Role.IsStaff() {
			return nil, domainErrors.ErrUnauthorized
		}
		if update.IsEmpty() {
			return nil, domainErrors.ErrInvalidMenuItem
		}
		if update.Price != nil && *update.Price < 0 {
			return nil, domainErrors.ErrInvalidMenuItem
		}
		item := model.MenuItem{ItemID: itemID, CanteenID: "canteen-1", Price: 60, StockQty: 4, Available: true}
		if update.Available != nil {
			item.Available = *update.Available
		}
		return &item, nil
	}})

	resp := performRequest(t, http.MethodPatch, "/menu/:item_id", "/menu/item-1", handler.Update, asActor(crew), []byte(`{"available":false}`), jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var item model.MenuItem
	if err := json.Unmarshal(resp.Body.Bytes(), &item); err != nil || item.Available || item.StockQty != 4 {
		t.Fatalf("unexpected body %s (%v)", resp.Body.String(), err)
	}

	resp = performRequest(t, http.MethodPatch, "/menu/:item_id", "/menu/item-1", handler.Update, asActor(crew), []byte(`{}`), jsonHeaders)
	if resp.Code != http.StatusBadRequest || !strings.Contains(resp.Body.String(), "no update data provided") {
		t.Fatalf("expected 400 for empty update, got %d %s", resp.Code, resp.Body.String())
	}

	resp = performRequest(t, http.MethodPatch, "/menu/:item_id", "/menu/item-1", handler.Update, asActor(crew), []byte(`{"price":-1}`), jsonHeaders)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPatch, "/menu/:item_id", "/menu/item-1", handler.Update, asActor(student), []byte(`{"price":40}`), jsonHeaders)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}
}

func TestFitnessHandlerProteinPlan(t *testing.T) {
	handler := NewFitnessHandler(testhelpers.FitnessFacadeStub{PlanFn: func(ctx context.Context, target int, excluded []string, canteenID string) ([]model.MenuItem, int, error) {
		if target > 100 {
			return nil, 0, domainErrors.ErrCapacityExceeded
		}
		if len(excluded) != 1 || excluded[0] != "tea" {
			t.Fatalf("unexpected exclusions %v", excluded)
		}
		return []model.MenuItem{{ItemID: "eggs", Name: "Eggs", Protein: 12}}, 12, nil
	}})

	resp := performRequest(t, http.MethodPost, "/plan", "/plan", handler.ProteinPlan, asActor(student),
		[]byte(`{"target_protein":15,"excluded_items":["tea"]}`), jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded dto.ProteinPlanResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.AchievedGrams != 12 || len(decoded.SelectedItems) != 1 || decoded.SelectedItems[0].ItemID != "eggs" {
		t.Fatalf("unexpected plan %+v", decoded)
	}

	resp = performRequest(t, http.MethodPost, "/plan", "/plan", handler.ProteinPlan, asActor(student),
		[]byte(`{"target_protein":500,"excluded_items":["tea"]}`), jsonHeaders)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", resp.Code)
	}
}

func TestSpendingHandler(t *testing.T) {
	handler := NewSpendingHandler(testhelpers.SpendingFacadeStub{})

	resp := performRequest(t, http.MethodGet, "/analytics", "/analytics", handler.Analytics, asActor(student), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var summary model.SpendingSummary
	if err := json.Unmarshal(resp.Body.Bytes(), &summary); err != nil || summary.StudentID != student.UserID {
		t.Fatalf("unexpected summary %s (%v)", resp.Body.String(), err)
	}

	empty := NewSpendingHandler(testhelpers.SpendingFacadeStub{BillsFn: func(context.Context, string) ([]model.Bill, error) {
		return nil, nil
	}})
	resp = performRequest(t, http.MethodGet, "/bills", "/bills", empty.Bills, asActor(student), nil, nil)
	if resp.Code != http.StatusOK || strings.TrimSpace(resp.Body.String()) != "[]" {
		t.Fatalf("expected empty list, got %d %q", resp.Code, resp.Body.String())
	}
}

func TestAnalyticsHandler(t *testing.T) {
	var gotCanteen string
	handler := NewAnalyticsHandler(testhelpers.AnalyticsFacadeStub{RevenueFn: func(ctx context.Context, canteenID string) (*model.RevenueSummary, error) {
		gotCanteen = canteenID
		return &model.RevenueSummary{TotalRevenue: 50, TotalOrders: 2, AverageOrderValue: 25}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/revenue", "/revenue?canteen_id=canteen-1", handler.Revenue, nil, nil, nil)
	if resp.Code != http.StatusOK || gotCanteen != "canteen-1" {
		t.Fatalf("unexpected revenue response %d for %q", resp.Code, gotCanteen)
	}

	resp = performRequest(t, http.MethodGet, "/top", "/top", handler.TopItems, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var items []model.ItemSales
	if err := json.Unmarshal(resp.Body.Bytes(), &items); err != nil || len(items) != 1 {
		t.Fatalf("unexpected items %s (%v)", resp.Body.String(), err)
	}
}

func TestStreamHandlerDeliversEvents(t *testing.T) {
	hub := notify.NewHub(4, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	handler := NewStreamHandler(testhelpers.StreamFacadeStub{Hub: hub}, time.Minute)

	router := gin.New()
	router.GET("/stream/canteen/:canteen_id", asActor(crew), handler.Canteen)
	server := httptest.NewServer(router)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/stream/canteen/canteen-1", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("unexpected content type %q", ct)
	}

	deadline := time.Now().Add(time.Second)
	for hub.Subscribers(notify.CanteenChannel("canteen-1")) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("stream did not subscribe")
		}
		time.Sleep(5 * time.Millisecond)
	}
	hub.Emit(ctx, notify.CanteenChannel("canteen-1"), model.StatusEvent{OrderID: "order_1", Status: model.OrderStatusReady, CanteenID: "canteen-1"})

	scanner := bufio.NewScanner(resp.Body)
	var sawEvent bool
	for scanner.Scan() {
		line := scanner.Text()
		if line == "event:"+EventName {
			sawEvent = true
			continue
		}
		if sawEvent && strings.HasPrefix(line, "data:") {
			var ev model.StatusEvent
			if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data:")), &ev); err != nil {
				t.Fatalf("failed to decode event: %v", err)
			}
			if ev.OrderID != "order_1" || ev.Status != model.OrderStatusReady {
				t.Fatalf("unexpected event %+v", ev)
			}
			return
		}
	}
	t.Fatalf("stream ended without event: %v", scanner.Err())
}

func TestStreamHandlerRejectsForeignCanteen(t *testing.T) {
	hub := notify.NewHub(4, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	handler := NewStreamHandler(testhelpers.StreamFacadeStub{Hub: hub}, 0)

	resp := performRequest(t, http.MethodGet, "/stream/canteen/:canteen_id", "/stream/canteen/canteen-2", handler.Canteen, asActor(crew), nil, nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}
	if hub.Subscribers(notify.CanteenChannel("canteen-2")) != 0 {
		t.Fatal("expected no subscription for rejected stream")
	}
}
