package models_test

import (
	"github.com/cycle-ledger/backend/internal/apperror"
	"github.com/cycle-ledger/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestUserEmailNormalized() {
	user := suite.createTestUser(models.User{Email: "  Jane.Doe@Example.COM "})
	assert.Equal(suite.T(), "jane.doe@example.com", user.Email)

	found, err := models.UserByEmail("JANE.DOE@example.com")
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), user.ID, found.ID)
}

func (suite *TestSuiteStandard) TestUserEmailInvalid() {
	err := models.CreateUser(&models.User{Email: "not an address"})
	assert.ErrorIs(suite.T(), err, models.ErrEmailInvalid)
}

func (suite *TestSuiteStandard) TestUserEmailInUse() {
	suite.createTestUser(models.User{Email: "jane@example.com"})

	err := models.CreateUser(&models.User{Email: "JANE@example.com"})
	assert.ErrorIs(suite.T(), err, models.ErrEmailInUse)
}

func (suite *TestSuiteStandard) TestUserNotFound() {
	_, err := models.UserByEmail("nobody@example.com")
	assert.ErrorIs(suite.T(), err, apperror.ErrNotFound)

	_, err = models.UserByID(uuid.New())
	assert.ErrorIs(suite.T(), err, apperror.ErrNotFound)
}

func (suite *TestSuiteStandard) TestUserVerify() {
	token := uuid.NewString()
	user := suite.createTestUser(models.User{VerificationToken: &token})

	found, err := models.UserByVerificationToken(token)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), user.ID, found.ID)
	assert.False(suite.T(), found.Verified)

	require.Nil(suite.T(), found.Verify())

	found, err = models.UserByID(user.ID)
	require.Nil(suite.T(), err)
	assert.True(suite.T(), found.Verified)
	assert.Nil(suite.T(), found.VerificationToken)

	_, err = models.UserByVerificationToken(token)
	assert.ErrorIs(suite.T(), err, apperror.ErrNotFound)
}

func (suite *TestSuiteStandard) TestUserSetVerificationToken() {
	user := suite.createTestUser(models.User{})
	require.Nil(suite.T(), user.SetVerificationToken("new-token"))

	found, err := models.UserByVerificationToken("new-token")
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), user.ID, found.ID)
}

func (suite *TestSuiteStandard) TestUserPreferredLedger() {
	user := suite.createTestUser(models.User{})

	_, ok, err := user.PreferredLedger()
	require.Nil(suite.T(), err)
	assert.False(suite.T(), ok, "User without ledgers has a preferred ledger")

	first := suite.createTestLedger(models.Ledger{UserID: user.ID, Name: "First"})
	second := suite.createTestLedger(models.Ledger{UserID: user.ID, Name: "Second"})

	ledger, ok, err := user.PreferredLedger()
	require.Nil(suite.T(), err)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), first.ID, ledger.ID, "Oldest ledger is not the default")

	require.Nil(suite.T(), user.SelectLedger(second.ID))
	ledger, _, err = user.PreferredLedger()
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), second.ID, ledger.ID)

	// A deleted ledger falls back to the oldest active ledger
	require.Nil(suite.T(), second.Deactivate())
	ledger, _, err = user.PreferredLedger()
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), first.ID, ledger.ID)
}

func (suite *TestSuiteStandard) TestUserSelectForeignLedger() {
	user := suite.createTestUser(models.User{})
	foreign := suite.createTestLedger(models.Ledger{})

	err := user.SelectLedger(foreign.ID)
	assert.ErrorIs(suite.T(), err, apperror.ErrNotFound)
	assert.Nil(suite.T(), user.LastSelectedLedgerID)
}
