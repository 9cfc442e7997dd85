package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Abdullah4Jovera/crm_backend/models"
)

// fakeDirectory is an in-memory user directory keyed by role, pipeline and
// branch.
type fakeDirectory struct {
	users []fakeUser
}

type fakeUser struct {
	id        primitive.ObjectID
	role      models.Role
	pipelines []primitive.ObjectID
	branch    primitive.ObjectID
}

func (d *fakeDirectory) add(role models.Role, pipeline, branch primitive.ObjectID) primitive.ObjectID {
	id := primitive.NewObjectID()
	u := fakeUser{id: id, role: role, branch: branch}
	if !pipeline.IsZero() {
		u.pipelines = []primitive.ObjectID{pipeline}
	}
	d.users = append(d.users, u)
	return id
}

func (d *fakeDirectory) FindIDsByRoles(ctx context.Context, roles []models.Role) ([]primitive.ObjectID, error) {
	var out []primitive.ObjectID
	for _, u := range d.users {
		for _, role := range roles {
			if u.role == role {
				out = append(out, u.id)
			}
		}
	}
	return out, nil
}

func (d *fakeDirectory) FindIDsByRolesInPipeline(ctx context.Context, roles []models.Role, pipeline primitive.ObjectID, branch *primitive.ObjectID) ([]primitive.ObjectID, error) {
	var out []primitive.ObjectID
	for _, u := range d.users {
		if !hasRole(roles, u.role) {
			continue
		}
		if !hasPipeline(u.pipelines, pipeline) {
			continue
		}
		if branch != nil && u.branch != *branch {
			continue
		}
		out = append(out, u.id)
	}
	return out, nil
}

func hasRole(roles []models.Role, r models.Role) bool {
	for _, role := range roles {
		if role == r {
			return true
		}
	}
	return false
}

func hasPipeline(pipelines []primitive.ObjectID, p primitive.ObjectID) bool {
	for _, id := range pipelines {
		if id == p {
			return true
		}
	}
	return false
}

func TestResolveVisibilityIncludesActorAndCreator(t *testing.T) {
	dir := &fakeDirectory{}
	resolver := NewRoleResolver(dir)

	actor := primitive.NewObjectID()
	creator := primitive.NewObjectID()

	ids, err := resolver.ResolveVisibility(context.Background(), VisibilityInput{
		Pipeline: primitive.NewObjectID(),
		Branch:   primitive.NewObjectID(),
		Creator:  creator,
		Actor:    actor,
	})
	require.NoError(t, err)
	assert.Contains(t, ids, actor)
	assert.Contains(t, ids, creator)
}

func TestResolveVisibilityPipelineScoping(t *testing.T) {
	dir := &fakeDirectory{}
	p1 := primitive.NewObjectID()
	b1 := primitive.NewObjectID()
	p2 := primitive.NewObjectID()
	b2 := primitive.NewObjectID()

	m1 := dir.add(models.RoleManager, p1, b1)
	m2 := dir.add(models.RoleManager, p2, b2)
	hod1 := dir.add(models.RoleHOD, p1, b1)
	agent := dir.add(models.RoleAgent, p1, b1)

	resolver := NewRoleResolver(dir)
	actor := primitive.NewObjectID()

	ids, err := resolver.ResolveVisibility(context.Background(), VisibilityInput{
		Pipeline: p1,
		Branch:   b1,
		Creator:  actor,
		Actor:    actor,
	})
	require.NoError(t, err)

	assert.Contains(t, ids, m1, "manager of the target pipeline/branch must be included")
	assert.Contains(t, ids, hod1, "HOD of the target pipeline/branch must be included")
	assert.NotContains(t, ids, m2, "manager of an unrelated pipeline must not be included")
	assert.NotContains(t, ids, agent, "agents join only as actor, creator or extras")
}

func TestResolveVisibilityGlobalRoles(t *testing.T) {
	dir := &fakeDirectory{}
	ceo := dir.add(models.RoleCEO, primitive.NilObjectID, primitive.NilObjectID)
	superadmin := dir.add(models.RoleSuperadmin, primitive.NilObjectID, primitive.NilObjectID)
	md := dir.add(models.RoleMD, primitive.NilObjectID, primitive.NilObjectID)

	resolver := NewRoleResolver(dir)
	actor := primitive.NewObjectID()

	ids, err := resolver.ResolveVisibility(context.Background(), VisibilityInput{
		Pipeline: primitive.NewObjectID(),
		Branch:   primitive.NewObjectID(),
		Creator:  actor,
		Actor:    actor,
	})
	require.NoError(t, err)
	assert.Contains(t, ids, ceo)
	assert.Contains(t, ids, superadmin)
	assert.Contains(t, ids, md)
}

func TestResolveVisibilityTransferKeepsPreviousHOD(t *testing.T) {
	dir := &fakeDirectory{}
	oldPipeline := primitive.NewObjectID()
	oldBranch := primitive.NewObjectID()
	newPipeline := primitive.NewObjectID()
	newBranch := primitive.NewObjectID()

	oldHOD := dir.add(models.RoleHOD, oldPipeline, oldBranch)
	oldManager := dir.add(models.RoleManager, oldPipeline, oldBranch)
	newManager := dir.add(models.RoleManager, newPipeline, newBranch)

	resolver := NewRoleResolver(dir)
	actor := primitive.NewObjectID()

	ids, err := resolver.ResolveVisibility(context.Background(), VisibilityInput{
		Pipeline:         newPipeline,
		Branch:           newBranch,
		Creator:          actor,
		Actor:            actor,
		PreviousPipeline: &oldPipeline,
		PreviousBranch:   &oldBranch,
	})
	require.NoError(t, err)

	assert.Contains(t, ids, oldHOD, "previous pipeline HOD keeps visibility on transfer")
	assert.Contains(t, ids, newManager)
	assert.NotContains(t, ids, oldManager, "previous pipeline manager drops out on transfer")
}

func TestResolveVisibilityAnyBranch(t *testing.T) {
	dir := &fakeDirectory{}
	pipeline := primitive.NewObjectID()
	b1 := primitive.NewObjectID()
	b2 := primitive.NewObjectID()

	sameBranch := dir.add(models.RoleManager, pipeline, b1)
	otherBranch := dir.add(models.RoleHOD, pipeline, b2)

	resolver := NewRoleResolver(dir)
	actor := primitive.NewObjectID()

	scoped, err := resolver.ResolveVisibility(context.Background(), VisibilityInput{
		Pipeline: pipeline,
		Branch:   b1,
		Creator:  actor,
		Actor:    actor,
	})
	require.NoError(t, err)
	assert.Contains(t, scoped, sameBranch)
	assert.NotContains(t, scoped, otherBranch)

	widened, err := resolver.ResolveVisibility(context.Background(), VisibilityInput{
		Pipeline:  pipeline,
		Branch:    b1,
		Creator:   actor,
		Actor:     actor,
		AnyBranch: true,
	})
	require.NoError(t, err)
	assert.Contains(t, widened, sameBranch)
	assert.Contains(t, widened, otherBranch)
}

func TestResolveVisibilityDeduplicates(t *testing.T) {
	dir := &fakeDirectory{}
	pipeline := primitive.NewObjectID()
	branch := primitive.NewObjectID()

	// Actor is also the pipeline manager, so they match twice.
	actor := dir.add(models.RoleManager, pipeline, branch)

	resolver := NewRoleResolver(dir)
	ids, err := resolver.ResolveVisibility(context.Background(), VisibilityInput{
		Pipeline: pipeline,
		Branch:   branch,
		Creator:  actor,
		Actor:    actor,
		Extra:    []primitive.ObjectID{actor},
	})
	require.NoError(t, err)

	count := 0
	for _, id := range ids {
		if id == actor {
			count++
		}
	}
	assert.Equal(t, 1, count, "an id must appear at most once")
}

func TestResolveVisibilitySkipsZeroIDs(t *testing.T) {
	dir := &fakeDirectory{}
	resolver := NewRoleResolver(dir)
	actor := primitive.NewObjectID()

	ids, err := resolver.ResolveVisibility(context.Background(), VisibilityInput{
		Pipeline: primitive.NewObjectID(),
		Branch:   primitive.NewObjectID(),
		Creator:  primitive.NilObjectID,
		Actor:    actor,
		Extra:    []primitive.ObjectID{primitive.NilObjectID},
	})
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{actor}, ids)
}
