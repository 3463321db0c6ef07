package models_test

import (
	"github.com/cycle-ledger/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestPing() {
	assert.Nil(suite.T(), models.Ping())

	suite.CloseDB()
	assert.NotNil(suite.T(), models.Ping())
}

func (suite *TestSuiteStandard) TestDatabaseClosed() {
	suite.CloseDB()

	_, err := models.LedgersOf(uuid.New())
	assert.ErrorIs(suite.T(), err, models.ErrGeneral)
}

func (suite *TestSuiteStandard) TestPostgresDSN() {
	assert.Equal(suite.T(), "host=db user=ledger password=secret dbname=ledger", models.PostgresDSN("db", "ledger", "secret", "ledger"))
}
