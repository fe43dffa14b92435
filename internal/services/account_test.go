package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ebaadraheem/skillmorph-cli/internal/models"
	"github.com/ebaadraheem/skillmorph-cli/internal/shared"
)

func TestAccountService(t *testing.T) {
	ctx := context.Background()

	t.Run("Login", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
					t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
				}
				body, _ := io.ReadAll(r.Body)
				var creds map[string]string
				json.Unmarshal(body, &creds)
				if creds["email"] != "a@b.com" || creds["password"] != "hunter2" {
					t.Errorf("unexpected credentials payload: %v", creds)
				}
				json.NewEncoder(w).Encode(models.LoginResult{AccessToken: "tok-1"})
			}))
			defer server.Close()

			account := NewAccountService(NewGateway(server.URL, nil, nil), nil)
			result, err := account.Login(ctx, "a@b.com", "hunter2")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if result.AccessToken != "tok-1" {
				t.Errorf("expected token tok-1, got %q", result.AccessToken)
			}
		})

		t.Run("Bad Credentials", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": "wrong password"})
			}))
			defer server.Close()

			account := NewAccountService(NewGateway(server.URL, nil, nil), nil)
			_, err := account.Login(ctx, "a@b.com", "wrong")
			if !errors.Is(err, shared.ErrAuthFailed) {
				t.Errorf("expected auth failure, got %v", err)
			}
		})

		t.Run("Missing Token In OK Response", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]string{})
			}))
			defer server.Close()

			account := NewAccountService(NewGateway(server.URL, nil, nil), nil)
			if _, err := account.Login(ctx, "a@b.com", "pw"); !errors.Is(err, shared.ErrAuthFailed) {
				t.Errorf("expected auth failure, got %v", err)
			}
		})
	})

	t.Run("CourseData", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/course/coursedata/7" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(models.CourseData{
				Success: true,
				Course:  models.Course{ID: 7, Title: "Go Deep"},
				Videos:  []models.Video{{ID: 1, CourseID: 7, Title: "Intro"}},
			})
		}))
		defer server.Close()

		account := NewAccountService(NewGateway(server.URL, nil, nil), nil)
		data, err := account.CourseData(ctx, 7)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if data.Course.Title != "Go Deep" || len(data.Videos) != 1 {
			t.Errorf("unexpected course data: %+v", data)
		}
	})

	t.Run("Error Mapping", func(t *testing.T) {
		cases := []struct {
			name   string
			status int
			want   error
		}{
			{"Validation", http.StatusBadRequest, shared.ErrValidation},
			{"Unprocessable", http.StatusUnprocessableEntity, shared.ErrValidation},
			{"Unauthorized", http.StatusUnauthorized, shared.ErrUnauthorized},
			{"Forbidden", http.StatusForbidden, shared.ErrUnauthorized},
			{"Server Error", http.StatusInternalServerError, shared.ErrAPIRequest},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tc.status)
					json.NewEncoder(w).Encode(map[string]string{"error": "nope"})
				}))
				defer server.Close()

				account := NewAccountService(NewGateway(server.URL, nil, nil), nil)
				err := account.Register(ctx, "u", "e@x.com", "pw")
				if !errors.Is(err, tc.want) {
					t.Errorf("status %d: expected %v, got %v", tc.status, tc.want, err)
				}
			})
		}
	})

	t.Run("ProcessPayment", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				body, _ := io.ReadAll(r.Body)
				var payload map[string]any
				json.Unmarshal(body, &payload)
				if payload["student_id"] != "u-1" {
					t.Errorf("expected student_id u-1, got %v", payload["student_id"])
				}
				if payload["creatorConnectId"] != "acct_1" {
					t.Errorf("expected creatorConnectId, got %v", payload["creatorConnectId"])
				}
				json.NewEncoder(w).Encode(models.CheckoutResult{
					Success: true, URL: "https://pay.example.com/s/1", SessionID: "cs_1",
				})
			}))
			defer server.Close()

			account := NewAccountService(NewGateway(server.URL, nil, nil), nil)
			course := models.Course{ID: 3, Price: "25", StripeAccountID: "acct_1"}
			result, err := account.ProcessPayment(ctx, course, "u-1")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if result.URL != "https://pay.example.com/s/1" {
				t.Errorf("unexpected checkout url %q", result.URL)
			}
		})

		t.Run("Declined", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(models.CheckoutResult{Success: false, Error: "card declined"})
			}))
			defer server.Close()

			account := NewAccountService(NewGateway(server.URL, nil, nil), nil)
			_, err := account.ProcessPayment(ctx, models.Course{ID: 3}, "u-1")
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected api request error, got %v", err)
			}
		})
	})

	t.Run("Course Lists", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(models.CourseList{
				Success: true,
				Courses: []models.Course{{ID: 1, Title: "One"}, {ID: 2, Title: "Two"}},
			})
		}))
		defer server.Close()

		account := NewAccountService(NewGateway(server.URL, nil, nil), nil)

		t.Run("Enrolled", func(t *testing.T) {
			courses, err := account.EnrolledCourses(ctx, "u-1")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(courses) != 2 {
				t.Errorf("expected 2 courses, got %d", len(courses))
			}
		})

		t.Run("Instructor", func(t *testing.T) {
			courses, err := account.InstructorCourses(ctx, "u-1")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(courses) != 2 {
				t.Errorf("expected 2 courses, got %d", len(courses))
			}
		})
	})
}
