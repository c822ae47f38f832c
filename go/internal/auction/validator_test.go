package auction

import (
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/ipl-auction/go/internal/models"
	"github.com/peterldowns/testy/check"
)

func testFixtures() (SessionView, *TeamSnapshot, Caller) {
	eventID := uuid.New()
	ownerID := uuid.New()
	view := SessionView{
		Active:     true,
		HighestBid: 100,
		LotRole:    models.PlayerRoleBatsman,
		LotEventID: eventID,
	}
	team := &TeamSnapshot{
		ID:              uuid.New(),
		Name:            "Chennai Kings",
		OwnerID:         ownerID,
		EventID:         eventID,
		RemainingBudget: 1000,
	}
	caller := Caller{UserID: ownerID, Role: models.UserRoleOwner, Authenticated: true}
	return view, team, caller
}

func TestDecide_AcceptsHigherBid(t *testing.T) {
	view, team, caller := testFixtures()

	d := Decide(view, team, nil, 150, caller)

	check.True(t, d.Accepted)
	check.Equal(t, RejectNone, d.Reason)
}

func TestDecide_RejectsInactiveSession(t *testing.T) {
	view, team, caller := testFixtures()
	view.Active = false

	d := Decide(view, team, nil, 150, caller)

	check.False(t, d.Accepted)
	check.Equal(t, RejectSessionInactive, d.Reason)
}

func TestDecide_RejectsNonIncreasingAmount(t *testing.T) {
	view, team, caller := testFixtures()

	// Equal to the highest bid is not an increase.
	d := Decide(view, team, nil, 100, caller)
	check.False(t, d.Accepted)
	check.Equal(t, RejectAmountNotAboveHigh, d.Reason)

	d = Decide(view, team, nil, 50, caller)
	check.False(t, d.Accepted)
	check.Equal(t, RejectAmountNotAboveHigh, d.Reason)
}

func TestDecide_RejectsUnauthenticated(t *testing.T) {
	view, team, _ := testFixtures()

	d := Decide(view, team, nil, 150, Caller{})

	check.False(t, d.Accepted)
	check.Equal(t, RejectUnauthenticated, d.Reason)
}

func TestDecide_RejectsNonOwner(t *testing.T) {
	view, team, caller := testFixtures()
	caller.UserID = uuid.New()

	d := Decide(view, team, nil, 150, caller)

	check.False(t, d.Accepted)
	check.Equal(t, RejectNotOwner, d.Reason)
}

func TestDecide_AdminMayBidForAnyTeam(t *testing.T) {
	view, team, _ := testFixtures()
	admin := Caller{UserID: uuid.New(), Role: models.UserRoleAdmin, Authenticated: true}

	d := Decide(view, team, nil, 150, admin)

	check.True(t, d.Accepted)
}

func TestDecide_RejectsOverBudget(t *testing.T) {
	view, team, caller := testFixtures()
	team.RemainingBudget = 120

	d := Decide(view, team, nil, 150, caller)

	check.False(t, d.Accepted)
	check.Equal(t, RejectInsufficientBudget, d.Reason)
}

func TestDecide_BudgetBoundaryIsInclusive(t *testing.T) {
	view, team, caller := testFixtures()
	team.RemainingBudget = 150

	d := Decide(view, team, nil, 150, caller)

	check.True(t, d.Accepted)
}

func TestDecide_RejectsTeamFromOtherEvent(t *testing.T) {
	view, team, caller := testFixtures()
	team.EventID = uuid.New()

	d := Decide(view, team, nil, 150, caller)

	check.False(t, d.Accepted)
	check.Equal(t, RejectWrongEvent, d.Reason)
}

func TestDecide_RejectsWhenRoleQuotaReached(t *testing.T) {
	view, team, caller := testFixtures()
	team.RosterRoles = []models.PlayerRole{
		models.PlayerRoleBatsman,
		models.PlayerRoleBatsman,
		models.PlayerRoleBowler,
	}
	limits := models.RoleLimits{models.PlayerRoleBatsman: 2}

	d := Decide(view, team, limits, 150, caller)

	check.False(t, d.Accepted)
	check.Equal(t, RejectRoleQuota, d.Reason)
}

func TestDecide_RoleQuotaOnlyCountsLotRole(t *testing.T) {
	view, team, caller := testFixtures()
	team.RosterRoles = []models.PlayerRole{
		models.PlayerRoleBowler,
		models.PlayerRoleBowler,
		models.PlayerRoleBowler,
	}
	limits := models.RoleLimits{
		models.PlayerRoleBatsman: 2,
		models.PlayerRoleBowler:  3,
	}

	d := Decide(view, team, limits, 150, caller)

	check.True(t, d.Accepted)
}

func TestDecide_ZeroLimitMeansUnlimited(t *testing.T) {
	view, team, caller := testFixtures()
	team.RosterRoles = []models.PlayerRole{
		models.PlayerRoleBatsman,
		models.PlayerRoleBatsman,
		models.PlayerRoleBatsman,
	}

	d := Decide(view, team, models.RoleLimits{}, 150, caller)

	check.True(t, d.Accepted)
}

func TestDecide_ChecksShortCircuitInOrder(t *testing.T) {
	// An inactive session wins over every later reason, even for an
	// unauthenticated caller with a broke team.
	view, team, _ := testFixtures()
	view.Active = false
	team.RemainingBudget = 0

	d := Decide(view, team, nil, 150, Caller{})

	check.Equal(t, RejectSessionInactive, d.Reason)

	// With the session active, the amount check comes before auth.
	view.Active = true
	d = Decide(view, team, nil, 100, Caller{})
	check.Equal(t, RejectAmountNotAboveHigh, d.Reason)
}
