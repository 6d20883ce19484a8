package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sb-tools/merchant-lens/pkg/models/api"
	"github.com/sb-tools/merchant-lens/pkg/models/domain"
	"github.com/sb-tools/merchant-lens/pkg/services/intent"
	"github.com/sb-tools/merchant-lens/pkg/services/report"
	"github.com/sb-tools/merchant-lens/pkg/store/dataset"
)

type mockConsultant struct {
	mock.Mock
}

func (m *mockConsultant) Consult(
	ctx context.Context,
	question string,
	withNarrative bool,
) (domain.Consultation, error) {
	args := m.Called(ctx, question, withNarrative)
	return args.Get(0).(domain.Consultation), args.Error(1)
}

func (m *mockConsultant) MerchantInfo(ctx context.Context, id string) (domain.Merchant, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Merchant), args.Error(1)
}

func (m *mockConsultant) MerchantReport(
	ctx context.Context,
	id string,
	tag domain.Intent,
) ([]domain.ReportSection, error) {
	args := m.Called(ctx, id, tag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReportSection), args.Error(1)
}

func (m *mockConsultant) History(
	ctx context.Context,
	merchantID string,
	limit int,
) ([]domain.Consultation, error) {
	args := m.Called(ctx, merchantID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Consultation), args.Error(1)
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(nil))

	consultant := new(mockConsultant)

	config := Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Consultant: consultant,
			Logger:     logger,
		},
	}
	router := ConfigureRouter(config)
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	createdAt := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	consultation := domain.Consultation{
		ID:         "11111111-2222-3333-4444-555555555555",
		MerchantID: "ABC12345",
		Intent:     domain.IntentRevisitRate,
		Question:   "재방문율이 낮은 것 같은데 원인이 뭘까요? (가게 ID: ABC12345)",
		Sections: []domain.ReportSection{
			{Title: report.BasicInfoTitle},
			{Title: domain.IntentRevisitRate.Label()},
		},
		CreatedAt: createdAt,
	}

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		setupMocks     func()
		expectedStatus int
		check          func(t *testing.T, body []byte)
	}{
		{
			name:   "CreateConsultation",
			method: http.MethodPost,
			path:   "/api/v1/consultations",
			body:   `{"question":"재방문율이 낮은 것 같은데 원인이 뭘까요? (가게 ID: ABC12345)"}`,
			setupMocks: func() {
				consultant.On("Consult", mock.Anything,
					"재방문율이 낮은 것 같은데 원인이 뭘까요? (가게 ID: ABC12345)", false).
					Return(consultation, nil).Once()
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var response api.Consultation
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "ABC12345", response.MerchantId)
				assert.Equal(t, "revisit_rate_analysis", response.Intent)
				require.Len(t, response.Sections, 2)
				assert.Equal(t, report.BasicInfoTitle, response.Sections[0].Title)
			},
		},
		{
			name:   "CreateConsultation_NoMerchantID",
			method: http.MethodPost,
			path:   "/api/v1/consultations",
			body:   `{"question":"재방문율이 낮은 것 같은데 원인이 뭘까요?"}`,
			setupMocks: func() {
				consultant.On("Consult", mock.Anything,
					"재방문율이 낮은 것 같은데 원인이 뭘까요?", false).
					Return(domain.Consultation{}, fmt.Errorf("question: %w", intent.ErrNoMerchantID)).Once()
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "GetMerchant",
			method: http.MethodGet,
			path:   "/api/v1/merchants/ABC12345",
			setupMocks: func() {
				consultant.On("MerchantInfo", mock.Anything, "ABC12345").
					Return(domain.Merchant{
						ID:          "ABC12345",
						Name:        "달빛커피",
						Category:    "카페",
						LatestMonth: "202406",
					}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var response api.Merchant
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "달빛커피", response.Name)
			},
		},
		{
			name:   "GetMerchant_NotFound",
			method: http.MethodGet,
			path:   "/api/v1/merchants/ZZZ00000",
			setupMocks: func() {
				consultant.On("MerchantInfo", mock.Anything, "ZZZ00000").
					Return(domain.Merchant{}, fmt.Errorf("merchant ZZZ00000: %w", dataset.ErrMerchantNotFound)).Once()
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "GetMerchantReport",
			method: http.MethodGet,
			path:   "/api/v1/merchants/ABC12345/report?intent=revisit_rate_analysis",
			setupMocks: func() {
				consultant.On("MerchantReport", mock.Anything, "ABC12345", domain.IntentRevisitRate).
					Return(consultation.Sections, nil).Once()
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var response []api.ReportSection
				require.NoError(t, json.Unmarshal(body, &response))
				require.Len(t, response, 2)
				assert.Equal(t, report.BasicInfoTitle, response[0].Title)
			},
		},
		{
			name:           "GetMerchantReport_UnknownIntent",
			method:         http.MethodGet,
			path:           "/api/v1/merchants/ABC12345/report?intent=horoscope",
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "ListConsultations",
			method: http.MethodGet,
			path:   "/api/v1/merchants/ABC12345/consultations",
			setupMocks: func() {
				consultant.On("History", mock.Anything, "ABC12345", 0).
					Return([]domain.Consultation{consultation}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var response []api.Consultation
				require.NoError(t, json.Unmarshal(body, &response))
				require.Len(t, response, 1)
				assert.Equal(t, "ABC12345", response[0].MerchantId)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()

			var resp *http.Response
			var err error
			switch tc.method {
			case http.MethodPost:
				resp, err = http.Post(testServer.URL+tc.path, "application/json", strings.NewReader(tc.body))
			default:
				resp, err = http.Get(testServer.URL + tc.path)
			}
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")

			if tc.check != nil {
				tc.check(t, body)
			}
		})
	}

	consultant.AssertExpectations(t)
}
