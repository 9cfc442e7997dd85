// services/role_resolver.go
package services

import (
	"context"

	"github.com/Abdullah4Jovera/crm_backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserDirectory answers the role queries the resolver needs. The Mongo
// implementation lives in repositories; tests use an in-memory fake.
type UserDirectory interface {
	// FindIDsByRoles returns the ids of all non-deleted users holding any of
	// the given roles, regardless of pipeline or branch.
	FindIDsByRoles(ctx context.Context, roles []models.Role) ([]primitive.ObjectID, error)

	// FindIDsByRolesInPipeline returns the ids of all non-deleted users
	// holding any of the given roles and associated with the pipeline. A nil
	// branch matches users in any branch.
	FindIDsByRolesInPipeline(ctx context.Context, roles []models.Role, pipeline primitive.ObjectID, branch *primitive.ObjectID) ([]primitive.ObjectID, error)
}

// VisibilityInput describes one visibility computation.
type VisibilityInput struct {
	Pipeline primitive.ObjectID
	Branch   primitive.ObjectID
	Creator  primitive.ObjectID
	Actor    primitive.ObjectID

	// AnyBranch widens the Manager/HOD query to the whole pipeline. The edit
	// flow scopes by pipeline only; every other flow matches branch exactly.
	AnyBranch bool

	// PreviousPipeline/PreviousBranch are set only on transfer: HOD users of
	// the previous pipeline and branch keep their visibility.
	PreviousPipeline *primitive.ObjectID
	PreviousBranch   *primitive.ObjectID

	// Extra ids (explicit selected_users from the request) joined as-is.
	Extra []primitive.ObjectID
}

// RoleResolver computes the deduplicated set of users that must see a lead
// or deal. It is stateless over the directory; an empty role query degrades
// the set to actor, creator and global-role users instead of failing.
type RoleResolver struct {
	dir UserDirectory
}

func NewRoleResolver(dir UserDirectory) *RoleResolver {
	return &RoleResolver{dir: dir}
}

// ResolveVisibility returns the union of the acting user, the creator, any
// explicit extras, all global-role users (CEO, superadmin, MD), Manager/HOD
// users of the target pipeline/branch and, for transfers, HOD users of the
// previous pipeline/branch.
func (r *RoleResolver) ResolveVisibility(ctx context.Context, in VisibilityInput) ([]primitive.ObjectID, error) {
	set := newIDSet()
	if !in.Actor.IsZero() {
		set.add(in.Actor)
	}
	if !in.Creator.IsZero() {
		set.add(in.Creator)
	}
	for _, id := range in.Extra {
		if !id.IsZero() {
			set.add(id)
		}
	}

	if in.PreviousPipeline != nil {
		prevHODs, err := r.dir.FindIDsByRolesInPipeline(ctx, []models.Role{models.RoleHOD}, *in.PreviousPipeline, in.PreviousBranch)
		if err != nil {
			return nil, StoreError("resolving previous pipeline HOD users", err)
		}
		set.addAll(prevHODs)
	}

	global, err := r.dir.FindIDsByRoles(ctx, models.GlobalRoles)
	if err != nil {
		return nil, StoreError("resolving global-role users", err)
	}
	set.addAll(global)

	var branch *primitive.ObjectID
	if !in.AnyBranch {
		branch = &in.Branch
	}
	pipelineUsers, err := r.dir.FindIDsByRolesInPipeline(ctx, models.PipelineRoles, in.Pipeline, branch)
	if err != nil {
		return nil, StoreError("resolving pipeline Manager/HOD users", err)
	}
	set.addAll(pipelineUsers)

	return set.ids(), nil
}

// idSet deduplicates ObjectIDs while keeping insertion order.
type idSet struct {
	seen map[primitive.ObjectID]struct{}
	ids_ []primitive.ObjectID
}

func newIDSet() *idSet {
	return &idSet{seen: make(map[primitive.ObjectID]struct{})}
}

func (s *idSet) add(id primitive.ObjectID) {
	if _, ok := s.seen[id]; ok {
		return
	}
	s.seen[id] = struct{}{}
	s.ids_ = append(s.ids_, id)
}

func (s *idSet) addAll(ids []primitive.ObjectID) {
	for _, id := range ids {
		s.add(id)
	}
}

func (s *idSet) ids() []primitive.ObjectID {
	return s.ids_
}
