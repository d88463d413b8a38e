package cache

// Parameter names handled specially when assembling a bag.
const (
	pageParam = "page"
	userParam = "user_id"

	// DefaultPage is the page number assumed when the request carries none.
	DefaultPage = "1"
)

// presentationParams never participate in cache keys: they change how a
// response is rendered, not which rows it contains.
var presentationParams = map[string]struct{}{
	"format":   {},
	"callback": {},
}

// BagSpec declares which request parameters a resource admits into its cache
// keys.
type BagSpec struct {
	// Allowed lists the query parameter names to include. When nil, every
	// query parameter except the presentation set is included.
	Allowed []string

	// UserSensitive marks resources whose results differ per principal.
	// The principal id becomes part of the bag so no two users can share a
	// cached entry.
	UserSensitive bool
}

// BuildParams assembles the parameter bag for one list request from query
// parameters, routing path parameters, the page number, and, when the
// resource is user-sensitive, the principal id.
func BuildParams(spec BagSpec, query, pathParams map[string]string, principalID string) Params {
	bag := Params{}

	if spec.Allowed != nil {
		for _, name := range spec.Allowed {
			if v, ok := query[name]; ok {
				bag[name] = v
				continue
			}
			if v, ok := pathParams[name]; ok {
				bag[name] = v
			}
		}
	} else {
		for name, v := range query {
			if _, skip := presentationParams[name]; skip {
				continue
			}
			if name == pageParam {
				continue
			}
			bag[name] = v
		}
		for name, v := range pathParams {
			bag[name] = v
		}
	}

	page := query[pageParam]
	if page == "" {
		page = DefaultPage
	}
	bag[pageParam] = page

	if spec.UserSensitive && principalID != "" {
		bag[userParam] = principalID
	}

	return bag
}
