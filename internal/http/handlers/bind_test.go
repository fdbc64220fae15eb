package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/geocoder89/portfoliohub/internal/domain/about"
	"github.com/geocoder89/portfoliohub/internal/domain/project"
	"github.com/geocoder89/portfoliohub/internal/http/handlers"
	"github.com/gin-gonic/gin"
)

func bindRouter[T any]() *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/bind", func(ctx *gin.Context) {
		var req T
		if !handlers.BindJSON(ctx, &req) {
			return
		}
		ctx.Status(http.StatusCreated)
	})
	return r
}

func postBind(t *testing.T, r *gin.Engine, body string) (*httptest.ResponseRecorder, handlers.APIError) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/bind", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handlers.APIError
	if w.Code != http.StatusCreated {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal error response: %v body=%s", err, w.Body.String())
		}
	}
	return w, resp
}

func TestBindJSON_ValidationErrorsUseJSONFieldNames(t *testing.T) {
	r := bindRouter[project.Request]()

	w, resp := postBind(t, r, `{"title":"   ","skills":[1,0]}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusBadRequest, w.Body.String())
	}
	if resp.Code != "validation_failed" {
		t.Fatalf("unexpected code: %s", resp.Code)
	}

	wantRules := map[string]string{
		"title":      "notblank",
		"logo":       "required",
		"image":      "required",
		"categoryId": "required",
		"skills[1]":  "gt",
	}

	found := map[string]handlers.FieldError{}
	for _, fieldErr := range resp.Errors {
		found[fieldErr.Field] = fieldErr
	}

	for field, rule := range wantRules {
		fieldErr, ok := found[field]
		if !ok {
			t.Fatalf("missing field error for %q: %+v", field, resp.Errors)
		}
		if fieldErr.Rule != rule {
			t.Fatalf("field %q rule mismatch: got %q want %q", field, fieldErr.Rule, rule)
		}
		if fieldErr.Message == "" {
			t.Fatalf("field %q should include a non-empty message", field)
		}
	}
}

func TestBindJSON_TypeMismatchUsesJSONFieldNames(t *testing.T) {
	r := bindRouter[project.Request]()

	w, resp := postBind(t, r, `{"title":"Site","logo":"l.png","image":"i.png","categoryId":"one"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusBadRequest, w.Body.String())
	}
	if len(resp.Errors) != 1 {
		t.Fatalf("expected one field error, got %+v", resp.Errors)
	}

	fieldErr := resp.Errors[0]
	if fieldErr.Field != "categoryId" {
		t.Fatalf("expected field categoryId, got %q", fieldErr.Field)
	}
	if fieldErr.Rule != "type" {
		t.Fatalf("expected rule type, got %q", fieldErr.Rule)
	}
	if fieldErr.Message != "must be of type number" {
		t.Fatalf("unexpected message %q", fieldErr.Message)
	}
}

func TestBindJSON_EndDateRequiredUnlessCurrent(t *testing.T) {
	r := bindRouter[about.ExperienceRequest]()

	base := `"title":"Engineer","company":"Acme","startDate":"2020-01-01","description":"Built things"`

	w, resp := postBind(t, r, `{`+base+`,"current":false}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", w.Code)
	}
	if len(resp.Errors) != 1 || resp.Errors[0].Field != "endDate" || resp.Errors[0].Rule != "required_unless" {
		t.Fatalf("unexpected errors: %+v", resp.Errors)
	}

	w, _ = postBind(t, r, `{`+base+`,"current":true}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("current position without endDate should bind, got %d body=%s", w.Code, w.Body.String())
	}

	w, resp = postBind(t, r, `{`+base+`,"endDate":"last year"}`)
	if w.Code != http.StatusBadRequest || resp.Errors[0].Rule != "isodate" {
		t.Fatalf("expected isodate failure, got %d %+v", w.Code, resp.Errors)
	}
}

func TestBindJSON_ProficiencyAcceptsNumericString(t *testing.T) {
	r := bindRouter[about.TechStackRequest]()

	w, _ := postBind(t, r, `{"name":"Go","icon":"go.svg","category":"Backend","proficiency":"85"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("numeric string should bind, got %d body=%s", w.Code, w.Body.String())
	}

	w, resp := postBind(t, r, `{"name":"Go","icon":"go.svg","category":"Backend","proficiency":101}`)
	if w.Code != http.StatusBadRequest || len(resp.Errors) != 1 || resp.Errors[0].Field != "proficiency" {
		t.Fatalf("expected proficiency max failure, got %d %+v", w.Code, resp.Errors)
	}
}

func TestBindJSON_EmptyAndMalformedBodies(t *testing.T) {
	r := bindRouter[project.Request]()

	w, resp := postBind(t, r, ``)
	if w.Code != http.StatusBadRequest || resp.Message != "Request body is required" {
		t.Fatalf("unexpected empty body response: %d %+v", w.Code, resp)
	}

	w, resp = postBind(t, r, `{"title":`)
	if w.Code != http.StatusBadRequest || resp.Code != "invalid_request" {
		t.Fatalf("unexpected malformed body response: %d %+v", w.Code, resp)
	}
}

func TestBindJSON_ProficiencyRejectsFractions(t *testing.T) {
	r := bindRouter[about.TechStackRequest]()

	for _, value := range []string{`100.9`, `"100.5"`, `-0.5`} {
		w, resp := postBind(t, r, `{"name":"Go","icon":"go.svg","category":"Backend","proficiency":`+value+`}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("proficiency %s: got status %d, want 400 body=%s", value, w.Code, w.Body.String())
		}
		if len(resp.Errors) != 1 || resp.Errors[0].Field != "proficiency" || resp.Errors[0].Rule != "type" {
			t.Fatalf("proficiency %s: unexpected errors %+v", value, resp.Errors)
		}
	}
}
