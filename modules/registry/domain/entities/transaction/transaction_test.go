package transaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanApply(t *testing.T) {
	assert.True(t, CanApply(ActionConfirm, StatusPending))
	assert.False(t, CanApply(ActionConfirm, StatusConfirmed))

	assert.True(t, CanApply(ActionProcess, StatusConfirmed))
	assert.True(t, CanApply(ActionProcess, StatusSupplementRequested))
	assert.False(t, CanApply(ActionProcess, StatusForwarded))

	assert.True(t, CanApply(ActionForward, StatusVerified))
	assert.False(t, CanApply(ActionForward, StatusPending))

	assert.True(t, CanApply(ActionApprove, StatusForwarded))
	assert.True(t, CanApply(ActionApprove, StatusVerified))
	assert.False(t, CanApply(ActionApprove, StatusPending))

	for _, terminal := range []Status{StatusApproved, StatusRejected} {
		for _, action := range []Action{ActionConfirm, ActionProcess, ActionForward, ActionApprove, ActionReject} {
			assert.False(t, CanApply(action, terminal), "%s must not apply to %s", action, terminal)
		}
	}
}

func TestActorOrg(t *testing.T) {
	assert.Equal(t, OrgCitizenMSP, ActorOrg(ActionConfirm))
	assert.Equal(t, OrgOfficeMSP, ActorOrg(ActionProcess))
	assert.Equal(t, OrgOfficeMSP, ActorOrg(ActionForward))
	assert.Equal(t, OrgAuthorityMSP, ActorOrg(ActionApprove))
	assert.Equal(t, OrgAuthorityMSP, ActorOrg(ActionReject))
}

func TestEndorsingOrgs(t *testing.T) {
	members := []string{"Org1MSP", "Org2MSP", "Org3MSP"}

	withList := &Transaction{Organizations: []string{"Org1MSP", "Org3MSP"}}
	assert.Equal(t, []string{"Org1MSP", "Org3MSP"}, withList.EndorsingOrgs(members),
		"an explicit organization list is used verbatim")

	withoutList := &Transaction{}
	assert.Equal(t, members, withoutList.EndorsingOrgs(members))
	assert.NotEmpty(t, withoutList.EndorsingOrgs(members))
}

func TestTerminal(t *testing.T) {
	assert.True(t, StatusApproved.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusSupplementRequested.Terminal())
}
