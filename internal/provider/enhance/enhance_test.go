package enhance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/ksyq12/hostprov/internal/config"
	"github.com/ksyq12/hostprov/internal/errors"
	"github.com/ksyq12/hostprov/internal/provision"
	"github.com/ksyq12/hostprov/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resellerOrg = "0b7f0a0e-1111-4c22-9e6e-3a3d3a3d3a3d"

type fakePlan struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Platform string `json:"platform"`
}

type fakeMember struct {
	ID      string   `json:"id"`
	LoginID string   `json:"loginId"`
	Email   string   `json:"email"`
	Roles   []string `json:"roles"`
}

type fakeSub struct {
	ID          int    `json:"id"`
	PlanID      int    `json:"planId"`
	PlanName    string `json:"planName"`
	Status      string `json:"status"`
	SuspendedBy string `json:"suspendedBy,omitempty"`
}

type fakeCustomer struct {
	ID         string
	Name       string
	OwnerEmail string
	Members    []*fakeMember
	Subs       map[string]*fakeSub
	Websites   map[string]map[string]any
}

// fakeEnhance emulates the orchd REST endpoints used by the adapter
type fakeEnhance struct {
	mu        sync.Mutex
	plans     []fakePlan
	customers map[string]*fakeCustomer
	passwords map[string]string // login id -> password
	nextSub   int
	log       []string
	failOn    func(r *http.Request) (int, string)
	mux       *http.ServeMux
}

func newFakeEnhance() *fakeEnhance {
	f := &fakeEnhance{
		customers: make(map[string]*fakeCustomer),
		passwords: make(map[string]string),
		nextSub:   10,
	}
	for i := 1; i <= 120; i++ {
		f.plans = append(f.plans, fakePlan{ID: i, Name: fmt.Sprintf("Filler %d", i), Platform: "linux"})
	}
	f.plans = append(f.plans,
		fakePlan{ID: 500, Name: "Business", Platform: "linux"},
		fakePlan{ID: 501, Name: "Business Plus", Platform: "linux"},
		fakePlan{ID: 600, Name: "Windows Pro", Platform: "windows"},
	)
	f.routes()
	return f
}

func (f *fakeEnhance) plan(id int) *fakePlan {
	for i := range f.plans {
		if f.plans[i].ID == id {
			return &f.plans[i]
		}
	}
	return nil
}

func reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func page[T any](r *http.Request, all []T) map[string]any {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit == 0 {
		limit = len(all)
	}
	end := offset + limit
	if offset > len(all) {
		offset = len(all)
	}
	if end > len(all) {
		end = len(all)
	}
	return map[string]any{"items": all[offset:end], "total": len(all)}
}

func (f *fakeEnhance) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.log = append(f.log, r.Method+" "+r.URL.Path)
	if f.failOn != nil {
		if status, body := f.failOn(r); status != 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
			return
		}
	}
	f.mux.ServeHTTP(w, r)
}

func (f *fakeEnhance) customer(w http.ResponseWriter, r *http.Request) *fakeCustomer {
	c, ok := f.customers[r.PathValue("org")]
	if !ok {
		reply(w, http.StatusNotFound, map[string]string{"code": "not_found", "message": "Organisation not found"})
		return nil
	}
	return c
}

func (f *fakeEnhance) routes() {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /orgs/{org}/plans", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, page(r, f.plans))
	})
	mux.HandleFunc("GET /orgs/{org}/plans/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(r.PathValue("id"))
		if p := f.plan(id); p != nil {
			reply(w, http.StatusOK, p)
			return
		}
		reply(w, http.StatusNotFound, map[string]string{"code": "not_found"})
	})
	mux.HandleFunc("GET /orgs/{org}/customers", func(w http.ResponseWriter, r *http.Request) {
		var items []map[string]any
		for _, c := range f.customers {
			if strings.Contains(c.OwnerEmail, r.URL.Query().Get("search")) {
				items = append(items, map[string]any{"id": c.ID, "name": c.Name, "ownerEmail": c.OwnerEmail})
			}
		}
		reply(w, http.StatusOK, page(r, items))
	})
	mux.HandleFunc("POST /orgs/{org}/customers", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ Name string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		c := &fakeCustomer{
			ID:       uuid.NewString(),
			Name:     body.Name,
			Subs:     make(map[string]*fakeSub),
			Websites: make(map[string]map[string]any),
		}
		f.customers[c.ID] = c
		reply(w, http.StatusCreated, map[string]string{"id": c.ID})
	})
	mux.HandleFunc("DELETE /orgs/{org}", func(w http.ResponseWriter, r *http.Request) {
		delete(f.customers, r.PathValue("org"))
		reply(w, http.StatusNoContent, nil)
	})
	mux.HandleFunc("POST /logins", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		id := uuid.NewString()
		f.passwords[id] = body.Password
		if c, ok := f.customers[r.URL.Query().Get("orgId")]; ok {
			c.OwnerEmail = body.Email
		}
		reply(w, http.StatusCreated, map[string]string{"id": id})
	})
	mux.HandleFunc("DELETE /logins/{id}", func(w http.ResponseWriter, r *http.Request) {
		delete(f.passwords, r.PathValue("id"))
		reply(w, http.StatusNoContent, nil)
	})
	mux.HandleFunc("PATCH /logins/{id}", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ Password string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.passwords[r.PathValue("id")] = body.Password
		reply(w, http.StatusNoContent, nil)
	})
	mux.HandleFunc("POST /orgs/{org}/members", func(w http.ResponseWriter, r *http.Request) {
		c := f.customer(w, r)
		if c == nil {
			return
		}
		var body struct {
			LoginID string
			Roles   []string
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		m := &fakeMember{ID: uuid.NewString(), LoginID: body.LoginID, Email: c.OwnerEmail, Roles: body.Roles}
		c.Members = append(c.Members, m)
		reply(w, http.StatusCreated, map[string]string{"id": m.ID})
	})
	mux.HandleFunc("GET /orgs/{org}/members", func(w http.ResponseWriter, r *http.Request) {
		if c := f.customer(w, r); c != nil {
			reply(w, http.StatusOK, page(r, c.Members))
		}
	})
	mux.HandleFunc("GET /orgs/{org}/members/{member}/sso", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, "https://cp.example.com/sso?token="+r.PathValue("member"))
	})
	mux.HandleFunc("POST /orgs/{org}/customers/{customer}/subscriptions", func(w http.ResponseWriter, r *http.Request) {
		c, ok := f.customers[r.PathValue("customer")]
		if !ok {
			reply(w, http.StatusNotFound, map[string]string{"code": "not_found"})
			return
		}
		var body struct{ PlanID int }
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.nextSub++
		sub := &fakeSub{ID: f.nextSub, PlanID: body.PlanID, PlanName: f.plan(body.PlanID).Name, Status: "active"}
		c.Subs[strconv.Itoa(sub.ID)] = sub
		reply(w, http.StatusCreated, map[string]int{"id": sub.ID})
	})
	mux.HandleFunc("GET /orgs/{org}/subscriptions", func(w http.ResponseWriter, r *http.Request) {
		c := f.customer(w, r)
		if c == nil {
			return
		}
		items := []*fakeSub{}
		for _, s := range c.Subs {
			items = append(items, s)
		}
		reply(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
	})
	mux.HandleFunc("GET /orgs/{org}/subscriptions/{sub}", func(w http.ResponseWriter, r *http.Request) {
		if sub := f.sub(w, r); sub != nil {
			reply(w, http.StatusOK, sub)
		}
	})
	mux.HandleFunc("PATCH /orgs/{org}/subscriptions/{sub}", func(w http.ResponseWriter, r *http.Request) {
		sub := f.sub(w, r)
		if sub == nil {
			return
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if v, ok := body["isSuspended"].(bool); ok {
			sub.Status = "active"
			sub.SuspendedBy = ""
			if v {
				sub.Status = "suspended"
				sub.SuspendedBy = "reseller"
			}
		}
		if v, ok := body["planId"].(float64); ok {
			sub.PlanID = int(v)
			sub.PlanName = f.plan(int(v)).Name
		}
		reply(w, http.StatusNoContent, nil)
	})
	mux.HandleFunc("DELETE /orgs/{org}/subscriptions/{sub}", func(w http.ResponseWriter, r *http.Request) {
		if c := f.customer(w, r); c != nil {
			delete(c.Subs, r.PathValue("sub"))
			reply(w, http.StatusNoContent, nil)
		}
	})
	mux.HandleFunc("GET /orgs/{org}/subscriptions/{sub}/resource-usage", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, map[string]any{"items": []map[string]any{
			{"name": "diskspace", "usage": 262144000, "total": 1048576000},
			{"name": "transfer", "usage": 52428800, "total": nil},
			{"name": "websites", "usage": 1, "total": 4},
			{"name": "mailboxes", "usage": 2},
		}})
	})
	mux.HandleFunc("POST /orgs/{org}/websites", func(w http.ResponseWriter, r *http.Request) {
		c := f.customer(w, r)
		if c == nil {
			return
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		id := uuid.NewString()
		c.Websites[id] = map[string]any{
			"id":             id,
			"domain":         map[string]any{"domain": body["domain"]},
			"subscriptionId": body["subscriptionId"],
			"phpVersion":     "php82",
			"serverIps":      []string{"203.0.113.50"},
		}
		reply(w, http.StatusCreated, map[string]string{"id": id})
	})
	mux.HandleFunc("GET /orgs/{org}/websites", func(w http.ResponseWriter, r *http.Request) {
		c := f.customer(w, r)
		if c == nil {
			return
		}
		items := []map[string]any{}
		for _, site := range c.Websites {
			if fmt.Sprint(site["subscriptionId"]) == r.URL.Query().Get("subscriptionId") {
				items = append(items, site)
			}
		}
		reply(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
	})
	mux.HandleFunc("DELETE /orgs/{org}/websites/{id}", func(w http.ResponseWriter, r *http.Request) {
		if c := f.customer(w, r); c != nil {
			delete(c.Websites, r.PathValue("id"))
			reply(w, http.StatusNoContent, nil)
		}
	})

	f.mux = mux
}

func (f *fakeEnhance) sub(w http.ResponseWriter, r *http.Request) *fakeSub {
	c := f.customer(w, r)
	if c == nil {
		return nil
	}
	sub, ok := c.Subs[r.PathValue("sub")]
	if !ok {
		reply(w, http.StatusNotFound, map[string]string{"code": "not_found", "message": "Subscription not found"})
		return nil
	}
	return sub
}

// seed creates a customer with an owner and one subscription on planID
func (f *fakeEnhance) seed(email string, planID int) (*fakeCustomer, *fakeSub) {
	f.nextSub++
	sub := &fakeSub{ID: f.nextSub, PlanID: planID, PlanName: f.plan(planID).Name, Status: "active"}
	loginID := uuid.NewString()
	c := &fakeCustomer{
		ID:         uuid.NewString(),
		Name:       email,
		OwnerEmail: email,
		Members:    []*fakeMember{{ID: uuid.NewString(), LoginID: loginID, Email: email, Roles: []string{"Owner"}}},
		Subs:       map[string]*fakeSub{strconv.Itoa(sub.ID): sub},
		Websites:   make(map[string]map[string]any),
	}
	f.customers[c.ID] = c
	f.passwords[loginID] = "old"
	return c, sub
}

func (f *fakeEnhance) requests(prefix string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, l := range f.log {
		if strings.HasPrefix(l, prefix) {
			out = append(out, l)
		}
	}
	return out
}

func newTestProvider(t *testing.T, fake *fakeEnhance) *Provider {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client := transport.NewClient(transport.Options{
		Name:         "enhance",
		BaseURL:      srv.URL,
		ErrorMessage: errorMessage,
	})
	return NewWithClient(client, resellerOrg, "cp.example.com")
}

func validCreate() provision.CreateParams {
	return provision.CreateParams{
		Email:        "owner@example.com",
		CustomerName: "Example Ltd",
		Password:     "Str0ng!Passw0rd",
		Domain:       "example.com",
		PackageName:  "Business",
	}
}

func TestNewUsesBearerTokenAndAPIPath(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		reply(w, http.StatusOK, map[string]any{"items": []any{}, "total": 0})
	}))
	defer srv.Close()

	p := New(&config.Server{
		Name:     "enhance1",
		Provider: config.ProviderEnhance,
		Hostname: srv.URL,
		APIToken: "TOKEN",
		OrgID:    resellerOrg,
	})
	_, err := p.planByName(context.Background(), "Business")
	require.Error(t, err)
	assert.Equal(t, "Bearer TOKEN", gotAuth)
	assert.Equal(t, "/api/orgs/"+resellerOrg+"/plans", gotPath)
}

func TestCreate(t *testing.T) {
	fake := newFakeEnhance()
	p := newTestProvider(t, fake)

	info, err := p.Create(context.Background(), validCreate())
	require.NoError(t, err)

	assert.Equal(t, "owner@example.com", info.Username)
	assert.Equal(t, "example.com", info.Domain)
	assert.Equal(t, "Business", info.PackageName)
	assert.Equal(t, "php82", info.Software["php"])
	assert.Equal(t, "203.0.113.50", info.IP)
	assert.False(t, info.Suspended)
	_, err = uuid.Parse(info.CustomerID)
	assert.NoError(t, err)
	assert.NotEmpty(t, info.SubscriptionID)

	c := fake.customers[info.CustomerID]
	require.NotNil(t, c)
	assert.Equal(t, "Example Ltd", c.Name)
	require.Len(t, c.Members, 1)
	assert.Equal(t, []string{"Owner"}, c.Members[0].Roles)

	// the plan sits on the second page of the listing
	assert.Len(t, fake.requests("GET /orgs/"+resellerOrg+"/plans"), 2)
}

func TestCreateWithoutDomain(t *testing.T) {
	fake := newFakeEnhance()
	svc := provision.NewService(newTestProvider(t, fake), nil)

	params := validCreate()
	params.Domain = ""
	info, err := svc.Create(context.Background(), params)
	require.NoError(t, err)
	assert.Empty(t, info.Domain)
	assert.Empty(t, fake.requests("POST /orgs/"+info.CustomerID+"/websites"))
}

func TestCreateRollsBackInReverseOrder(t *testing.T) {
	fake := newFakeEnhance()
	fake.failOn = func(r *http.Request) (int, string) {
		if r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/websites") {
			return http.StatusConflict, `{"code":"already_exists","message":"Domain already exists"}`
		}
		return 0, ""
	}
	svc := provision.NewService(newTestProvider(t, fake), []string{"TOKEN"})

	_, err := svc.Create(context.Background(), validCreate())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConflict))
	assert.Equal(t, "Domain already exists (conflict)", err.Error())

	var perr *errors.ProvisionError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "website", perr.Debug["failed_step"])
	assert.Equal(t, []string{"subscription", "login", "customer"}, perr.Debug["rolled_back"])

	deletes := fake.requests("DELETE")
	require.Len(t, deletes, 3)
	assert.Contains(t, deletes[0], "/subscriptions/")
	assert.True(t, strings.HasPrefix(deletes[1], "DELETE /logins/"), deletes[1])
	assert.True(t, strings.HasPrefix(deletes[2], "DELETE /orgs/"), deletes[2])
	assert.NotContains(t, deletes[2], "/subscriptions/")
	assert.Empty(t, fake.customers)
	assert.Empty(t, fake.passwords)
}

func TestCreateRollsBackLoginWhenMembershipFails(t *testing.T) {
	fake := newFakeEnhance()
	fake.failOn = func(r *http.Request) (int, string) {
		if r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/members") {
			return http.StatusBadRequest, `{"code":"invalid_role","message":"Role not allowed"}`
		}
		return 0, ""
	}
	svc := provision.NewService(newTestProvider(t, fake), nil)

	_, err := svc.Create(context.Background(), validCreate())
	require.Error(t, err)

	var perr *errors.ProvisionError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "membership", perr.Debug["failed_step"])
	assert.Equal(t, []string{"login", "customer"}, perr.Debug["rolled_back"])
	assert.Len(t, fake.requests("DELETE /logins/"), 1)
	assert.Empty(t, fake.passwords)
	assert.Empty(t, fake.customers)
}

func TestCreatePlanNotFound(t *testing.T) {
	fake := newFakeEnhance()
	svc := provision.NewService(newTestProvider(t, fake), nil)

	params := validCreate()
	params.PackageName = "Nope"
	_, err := svc.Create(context.Background(), params)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	assert.Empty(t, fake.requests("POST"))
}

func TestGetInfoByUsername(t *testing.T) {
	fake := newFakeEnhance()
	c, sub := fake.seed("bob@example.com", 500)
	p := newTestProvider(t, fake)

	info, err := p.GetInfo(context.Background(), provision.AccountIdentity{Username: "bob@example.com"})
	require.NoError(t, err)
	assert.Equal(t, c.ID, info.CustomerID)
	assert.Equal(t, strconv.Itoa(sub.ID), info.SubscriptionID)
	assert.Equal(t, "Business", info.PackageName)
	assert.Equal(t, "cp.example.com", info.ServerHostname)
}

func TestGetInfoValidatesIDs(t *testing.T) {
	p := newTestProvider(t, newFakeEnhance())

	_, err := p.GetInfo(context.Background(), provision.AccountIdentity{Username: "bob", CustomerID: "not-a-uuid"})
	assert.True(t, errors.Is(err, errors.ErrValidation))

	_, err = p.GetInfo(context.Background(), provision.AccountIdentity{
		Username:       "bob",
		CustomerID:     uuid.NewString(),
		SubscriptionID: "abc",
	})
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestGetInfoUnknownCustomer(t *testing.T) {
	svc := provision.NewService(newTestProvider(t, newFakeEnhance()), nil)

	_, err := svc.GetInfo(context.Background(), provision.AccountIdentity{Username: "ghost@example.com"})
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestGetUsage(t *testing.T) {
	fake := newFakeEnhance()
	c, sub := fake.seed("bob@example.com", 500)
	p := newTestProvider(t, fake)

	usage, err := p.GetUsage(context.Background(), provision.AccountIdentity{
		Username:       "bob@example.com",
		CustomerID:     c.ID,
		SubscriptionID: strconv.Itoa(sub.ID),
	})
	require.NoError(t, err)

	u := usage.Usage
	assert.Equal(t, 250.0, u.DiskMB.Used)
	assert.Equal(t, "25%", *u.DiskMB.UsedPC)
	assert.Equal(t, 50.0, u.BandwidthMB.Used)
	assert.Nil(t, u.BandwidthMB.Limit)
	assert.Equal(t, "25%", *u.Websites.UsedPC)
	assert.Nil(t, u.Mailboxes.Limit)
	assert.Nil(t, u.Inodes)
}

func TestChangePackage(t *testing.T) {
	fake := newFakeEnhance()
	fake.seed("bob@example.com", 500)
	p := newTestProvider(t, fake)

	info, err := p.ChangePackage(context.Background(), provision.ChangePackageParams{
		AccountIdentity: provision.AccountIdentity{Username: "bob@example.com"},
		PackageName:     "Business Plus",
	})
	require.NoError(t, err)
	assert.Equal(t, "Business Plus", info.PackageName)
}

func TestChangePackagePlatformMismatch(t *testing.T) {
	fake := newFakeEnhance()
	fake.seed("bob@example.com", 500)
	svc := provision.NewService(newTestProvider(t, fake), nil)

	_, err := svc.ChangePackage(context.Background(), provision.ChangePackageParams{
		AccountIdentity: provision.AccountIdentity{Username: "bob@example.com"},
		PackageName:     "Windows Pro",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnsupported))
	assert.Empty(t, fake.requests("PATCH"))
}

func TestSuspendUnsuspend(t *testing.T) {
	fake := newFakeEnhance()
	fake.seed("bob@example.com", 500)
	svc := provision.NewService(newTestProvider(t, fake), nil)
	id := provision.AccountIdentity{Username: "bob@example.com"}

	info, err := svc.Suspend(context.Background(), provision.SuspendParams{AccountIdentity: id})
	require.NoError(t, err)
	assert.True(t, info.Suspended)
	assert.Equal(t, "Suspended by reseller", info.SuspendReason)

	info, err = svc.Suspend(context.Background(), provision.SuspendParams{AccountIdentity: id})
	require.NoError(t, err)
	assert.Equal(t, "Account already suspended", info.Message)
	assert.Len(t, fake.requests("PATCH"), 1)

	info, err = svc.Unsuspend(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, info.Suspended)
}

func TestGetLoginURL(t *testing.T) {
	fake := newFakeEnhance()
	c, _ := fake.seed("bob@example.com", 500)
	p := newTestProvider(t, fake)

	login, err := p.GetLoginURL(context.Background(), provision.GetLoginURLParams{
		AccountIdentity: provision.AccountIdentity{Username: "bob@example.com"},
		UserIP:          "203.0.113.9",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cp.example.com/sso?token="+c.Members[0].ID, login.LoginURL)
}

func TestChangePassword(t *testing.T) {
	fake := newFakeEnhance()
	c, _ := fake.seed("bob@example.com", 500)
	p := newTestProvider(t, fake)

	_, err := p.ChangePassword(context.Background(), provision.ChangePasswordParams{
		AccountIdentity: provision.AccountIdentity{Username: "bob@example.com"},
		Password:        "N3w!Passw0rd",
	})
	require.NoError(t, err)
	assert.Equal(t, "N3w!Passw0rd", fake.passwords[c.Members[0].LoginID])
}

func TestTerminate(t *testing.T) {
	fake := newFakeEnhance()
	fake.seed("bob@example.com", 500)
	p := newTestProvider(t, fake)

	res, err := p.Terminate(context.Background(), provision.AccountIdentity{Username: "bob@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Account terminated", res.Message)
	assert.Empty(t, fake.customers)
}

func TestResellerUnsupported(t *testing.T) {
	p := newTestProvider(t, newFakeEnhance())

	_, err := p.GrantReseller(context.Background(), provision.AccountIdentity{Username: "bob"})
	assert.True(t, errors.Is(err, errors.ErrUnsupported))
	_, err = p.RevokeReseller(context.Background(), provision.AccountIdentity{Username: "bob"})
	assert.True(t, errors.Is(err, errors.ErrUnsupported))
}
