package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

type detailReq struct {
	Code string `param:"code" validate:"required,stockcode"`
}

type tabReq struct {
	Mode  string `json:"mode" validate:"required,oneof=foreign institution"`
	Limit int    `json:"limit" default:"5" validate:"gte=1,lte=50"`
}

func bindDetail(t *testing.T, code string) interface{} {
	t.Helper()
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), httptest.NewRecorder())
	c.SetParamNames("code")
	c.SetParamValues(code)
	return ReadAndValidateRequest(c, &detailReq{})
}

func TestStockCodeTag(t *testing.T) {
	for _, ok := range []string{"005930", "A005930", "0000Z0"} {
		if verr := bindDetail(t, ok); verr != nil {
			t.Fatalf("%q should pass, got %+v", ok, verr)
		}
	}
	for _, bad := range []string{"00/59", "005930?x", "삼성", strings.Repeat("1", MaxStockCodeLen+1)} {
		verr := bindDetail(t, bad)
		errs, ok := verr.([]ValidationError)
		if !ok || len(errs) != 1 || errs[0].Code != "ERR_STOCKCODE" || errs[0].Field != "code" {
			t.Fatalf("%q should fail with ERR_STOCKCODE on code, got %+v", bad, verr)
		}
	}
}

func TestValidationUsesJSONNamesAndDefaults(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"mode":"retail"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	r := &tabReq{}
	errs, ok := ReadAndValidateRequest(c, r).([]ValidationError)
	if !ok || len(errs) != 1 {
		t.Fatalf("expected one validation error, got %+v", errs)
	}
	if errs[0].Field != "mode" || errs[0].Code != "ERR_ONEOF" || errs[0].Message != "mode must be one of: foreign, institution" {
		t.Fatalf("unexpected error %+v", errs[0])
	}
	if r.Limit != 5 {
		t.Fatalf("default not applied, got %d", r.Limit)
	}
}
