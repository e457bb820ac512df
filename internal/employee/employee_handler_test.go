package employee_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"go-ems/internal/employee"
	employeeerrors "go-ems/internal/employee/errors"
	employeeMock "go-ems/internal/employee/mock"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/response"
)

func setupEmployeeRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	return gin.New()
}

func TestEmployeeHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := employeeMock.NewMockService(ctrl)
	handler := employee.NewHandler(mockService)
	router := setupEmployeeRouter()
	router.GET("/employees", handler.List)

	t.Run("success with filters", func(t *testing.T) {
		mockService.EXPECT().
			List(gomock.Any(), employee.ListQuery{
				Page:       2,
				Limit:      5,
				Search:     "jane",
				Department: "Engineering",
				Status:     "active",
			}).
			Return([]employee.EmployeeResponse{
				{ID: uuid.NewString(), EmployeeID: "EMP001"},
			}, response.NewPagination(6, 2, 5), nil)

		req := httptest.NewRequest(http.MethodGet,
			"/employees?page=2&limit=5&search=jane&department=Engineering&status=active", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var res map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &res)
		assert.Equal(t, true, res["succeeded"])

		data := res["data"].(map[string]interface{})
		assert.Len(t, data["employees"], 1)
		pagination := data["pagination"].(map[string]interface{})
		assert.Equal(t, float64(2), pagination["currentPage"])
		assert.Equal(t, float64(6), pagination["totalItems"])
	})

	t.Run("defaults applied when query is empty", func(t *testing.T) {
		mockService.EXPECT().
			List(gomock.Any(), employee.ListQuery{Page: 1, Limit: 10}).
			Return([]employee.EmployeeResponse{}, response.NewPagination(0, 1, 10), nil)

		req := httptest.NewRequest(http.MethodGet, "/employees", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects unknown status filter", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/employees?status=fired", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEmployeeHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := employeeMock.NewMockService(ctrl)
	handler := employee.NewHandler(mockService)
	router := setupEmployeeRouter()
	router.POST("/employees", handler.Create)

	t.Run("success", func(t *testing.T) {
		reqBody := employee.CreateEmployeeRequest{
			UserID:     uuid.NewString(),
			EmployeeID: "EMP001",
			Department: "Engineering",
			HireDate:   "2026-01-15",
		}
		body, _ := json.Marshal(reqBody)

		mockService.EXPECT().
			Create(gomock.Any(), reqBody).
			Return(employee.EmployeeResponse{
				ID:         uuid.NewString(),
				EmployeeID: "EMP001",
				Status:     employee.StatusActive,
			}, nil)

		req := httptest.NewRequest(http.MethodPost, "/employees", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var res map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &res)
		assert.Equal(t, "Employee record created successfully", res["message"])
		assert.Equal(t, "EMP001",
			res["data"].(map[string]interface{})["employee"].(map[string]interface{})["employeeId"])
	})

	t.Run("missing user id", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"employeeId": "EMP001"})

		req := httptest.NewRequest(http.MethodPost, "/employees", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed hire date", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{
			"userId":     uuid.NewString(),
			"employeeId": "EMP001",
			"hireDate":   "15-01-2026",
		})

		req := httptest.NewRequest(http.MethodPost, "/employees", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("conflict reads as bad request", func(t *testing.T) {
		reqBody := employee.CreateEmployeeRequest{
			UserID:     uuid.NewString(),
			EmployeeID: "EMP001",
		}
		body, _ := json.Marshal(reqBody)

		mockService.EXPECT().
			Create(gomock.Any(), reqBody).
			Return(employee.EmployeeResponse{}, employeeerrors.ErrEmployeeRecordExists)

		req := httptest.NewRequest(http.MethodPost, "/employees", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var res map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &res)
		assert.Equal(t, "Employee record already exists for this user", res["message"])
	})
}

func TestEmployeeHandler_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := employeeMock.NewMockService(ctrl)
	handler := employee.NewHandler(mockService)
	router := setupEmployeeRouter()
	router.PUT("/employees/:id", handler.Update)

	t.Run("absent fields stay nil", func(t *testing.T) {
		emplID := uuid.NewString()
		body := []byte(`{"firstName":"Janet","salary":6000,"department":""}`)

		mockService.EXPECT().
			Update(gomock.Any(), emplID, gomock.Any()).
			DoAndReturn(func(_ interface{}, _ string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.NotNil(t, req.FirstName)
				assert.Equal(t, "Janet", *req.FirstName)
				assert.NotNil(t, req.Salary)
				assert.Equal(t, 6000.0, *req.Salary)
				assert.NotNil(t, req.Department)
				assert.Equal(t, "", *req.Department)
				assert.Nil(t, req.LastName)
				assert.Nil(t, req.EmployeeID)
				return employee.EmployeeResponse{ID: emplID}, nil
			})

		req := httptest.NewRequest(http.MethodPut, "/employees/"+emplID, bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var res map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &res)
		assert.Equal(t, "Employee updated successfully", res["message"])
	})

	t.Run("not found", func(t *testing.T) {
		emplID := uuid.NewString()
		mockService.EXPECT().
			Update(gomock.Any(), emplID, gomock.Any()).
			Return(employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound)

		req := httptest.NewRequest(http.MethodPut, "/employees/"+emplID, bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEmployeeHandler_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := employeeMock.NewMockService(ctrl)
	handler := employee.NewHandler(mockService)
	router := setupEmployeeRouter()
	router.DELETE("/employees/:id", handler.Delete)

	t.Run("success", func(t *testing.T) {
		emplID := uuid.NewString()
		mockService.EXPECT().Delete(gomock.Any(), emplID).Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/employees/"+emplID, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var res map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &res)
		assert.Equal(t, true, res["succeeded"])
		assert.Equal(t, "Employee deleted successfully", res["message"])
		assert.Nil(t, res["data"])
	})
}

func TestEmployeeHandler_MyProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := employeeMock.NewMockService(ctrl)
	handler := employee.NewHandler(mockService)
	router := setupEmployeeRouter()

	userID := uuid.NewString()
	router.GET("/employees/profile", func(c *gin.Context) {
		c.Set("user_id", userID)
	}, handler.MyProfile)

	t.Run("success", func(t *testing.T) {
		mockService.EXPECT().
			MyProfile(gomock.Any(), userID).
			Return(
				employee.EmployeeResponse{EmployeeID: "EMP001"},
				employee.AccountResponse{ID: userID, Email: "jane@example.com"},
				nil,
			)

		req := httptest.NewRequest(http.MethodGet, "/employees/profile", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var res map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &res)
		data := res["data"].(map[string]interface{})
		assert.Equal(t, "EMP001", data["employee"].(map[string]interface{})["employeeId"])
		assert.Equal(t, userID, data["user"].(map[string]interface{})["id"])
	})

	t.Run("not onboarded", func(t *testing.T) {
		mockService.EXPECT().
			MyProfile(gomock.Any(), userID).
			Return(employee.EmployeeResponse{}, employee.AccountResponse{},
				employeeerrors.ErrEmployeeProfileNotFound)

		req := httptest.NewRequest(http.MethodGet, "/employees/profile", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
