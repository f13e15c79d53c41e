package controllers_test

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/kalekundert/two-cents/internal/importer"
	"github.com/kalekundert/two-cents/internal/models"
	"github.com/kalekundert/two-cents/test"
)

func (suite *TestSuiteStandard) TestCreateBank() {
	bank := suite.createTestBank("test")

	suite.Assert().Equal("Test Bank", bank.Name)
	suite.Assert().Equal("test", bank.ConnectorKey)
	suite.Assert().True(bank.LastUpdate.Equal(testTime))
}

func (suite *TestSuiteStandard) TestCreateBankDuplicateConnector() {
	_ = suite.createTestBank("test")

	r := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/banks", map[string]any{
		"name":         "Another Bank",
		"connectorKey": "test",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetBanks() {
	_ = suite.createTestBank("test")

	r := test.Request(suite.T(), suite.router, http.MethodGet, "/v1/banks", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response struct {
		Data []models.Bank `json:"data"`
	}
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Len(response.Data, 1)
}

func (suite *TestSuiteStandard) TestDeleteBank() {
	bank := suite.createTestBank("test")

	r := test.Request(suite.T(), suite.router, http.MethodDelete, fmt.Sprintf("/v1/banks/%s", bank.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), suite.router, http.MethodGet, fmt.Sprintf("/v1/banks/%s", bank.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestImportPayments() {
	bank := suite.createTestBank("test")

	body := []map[string]any{
		{
			"accountId":     "1234",
			"transactionId": "a",
			"date":          "2024-03-14T00:00:00Z",
			"value":         -1500,
			"description":   "COFFEE SHOP",
		},
		{
			"accountId":     "1234",
			"transactionId": "b",
			"date":          "2024-03-13T00:00:00Z",
			"value":         -4200,
			"description":   "GROCERY STORE",
		},
	}

	r := test.Request(suite.T(), suite.router, http.MethodPost, fmt.Sprintf("/v1/banks/%s/payments", bank.ID), body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response struct {
		Created int `json:"created"`
	}
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(2, response.Created)

	// Re-sending the same window creates nothing new.
	r = test.Request(suite.T(), suite.router, http.MethodPost, fmt.Sprintf("/v1/banks/%s/payments", bank.ID), body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(0, response.Created)
}

func (suite *TestSuiteStandard) TestImportPaymentsMissingFields() {
	bank := suite.createTestBank("test")

	r := test.Request(suite.T(), suite.router, http.MethodPost, fmt.Sprintf("/v1/banks/%s/payments", bank.ID), []map[string]any{
		{"value": -1500},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

type apiStubConnector struct{}

func (apiStubConnector) FetchNewTransactions(_ context.Context, _ time.Time) ([]importer.Transaction, error) {
	return []importer.Transaction{
		{
			AccountID:     "1234",
			TransactionID: "sync-a",
			Date:          testTime,
			Value:         -1500,
			Description:   "COFFEE SHOP",
		},
	}, nil
}

func (suite *TestSuiteStandard) TestSyncBank() {
	importer.Register("api-stub", apiStubConnector{})
	bank := suite.createTestBank("api-stub")

	r := test.Request(suite.T(), suite.router, http.MethodPost, fmt.Sprintf("/v1/banks/%s/sync", bank.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response struct {
		Created int `json:"created"`
	}
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(1, response.Created)
}

func (suite *TestSuiteStandard) TestSyncBankUnknownConnector() {
	bank := suite.createTestBank("no-such-connector")

	r := test.Request(suite.T(), suite.router, http.MethodPost, fmt.Sprintf("/v1/banks/%s/sync", bank.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}
