package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"crm-relay.io/relay/internal/api/middleware"
	"crm-relay.io/relay/internal/pkg/logger"
	"crm-relay.io/relay/internal/service"
	"crm-relay.io/relay/internal/testutil"
	"crm-relay.io/relay/internal/usecase"
)

func TestMain(m *testing.M) {
	_ = logger.Init("error", "json")
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// testHarness wires real services over in-memory fakes behind the full
// route surface.
type testHarness struct {
	crm     *testutil.FakeCRM
	mailbox *testutil.FakeMailbox
	router  *gin.Engine
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()

	crm := testutil.NewFakeCRM()
	fakeMailbox := testutil.NewFakeMailbox()
	mailboxSvc := service.NewMailboxService(fakeMailbox)

	srv := NewServer(ServerDeps{
		Composer:     service.NewComposer(crm, mailboxSvc, 4),
		Dashboard:    service.NewDashboardService(crm),
		Mailbox:      mailboxSvc,
		CreateLeadUC: usecase.NewCreateLeadUseCase(crm),
		CreateDealUC: usecase.NewCreateDealUseCase(crm),
		JWTCfg: middleware.JWTConfig{
			SigningKey: []byte("test-key"),
			Issuer:     "crm-relay-test",
			ExpiresIn:  time.Hour,
		},
	})

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ErrorHandler())
	v1 := r.Group("/api/v1")
	{
		views := v1.Group("/views")
		views.GET("/leads/:id", srv.GetLeadView)
		views.GET("/customers/:id", srv.GetCustomerView)
		views.GET("/deals/:id", srv.GetDealView)
		views.GET("/contacts/:id", srv.GetContactView)
		views.GET("/activities/:id", srv.GetActivityView)
		views.GET("/emails/:id", srv.GetEmailView)

		v1.GET("/dashboard/stats", srv.GetDashboardStats)
		v1.GET("/mailbox/conversations/:id/check", srv.GetConversationCheck)
		v1.POST("/leads", srv.CreateLead)
		v1.POST("/deals", srv.CreateDeal)
	}

	return &testHarness{crm: crm, mailbox: fakeMailbox, router: r}
}

func (h *testHarness) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}
