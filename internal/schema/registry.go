package schema

// Kind is the declared shape of a well-known key (spec §3).
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindStringSeq
	KindMapping
	KindDuration
	KindCheckSeq
	KindLinkSeq
	KindEnum
)

// KeySchema declares one well-known key's shape and, for KindEnum, its
// closed value set.
type KeySchema struct {
	Kind    Kind
	Enum    []string
	Default interface{}
}

// Registry is the well-known-keys table of spec §3. Keys absent from the
// registry are "unknown top-level keys" and are preserved as-is per
// spec §4.2.
var Registry = map[string]KeySchema{
	"name":       {Kind: KindString},
	"test":       {Kind: KindString},
	"path":       {Kind: KindString},
	"framework":  {Kind: KindEnum, Enum: []string{"shell", "beakerlib"}},
	"duration":   {Kind: KindDuration, Default: "5m"},
	"tag":        {Kind: KindStringSeq},
	"contact":    {Kind: KindStringSeq},
	"require":    {Kind: KindStringSeq},
	"recommend":  {Kind: KindStringSeq},
	"environment": {Kind: KindMapping},
	"enabled":    {Kind: KindBool, Default: true},
	"result":     {Kind: KindEnum, Enum: []string{"respect", "xfail", "pass", "fail", "info"}, Default: "respect"},
	"check":      {Kind: KindCheckSeq},
	"link":       {Kind: KindLinkSeq},
	"id":         {Kind: KindString},
}

// IsSequence reports whether key's declared schema is always materialized
// as a sequence, per spec §3's invariant ("the materialized value is
// always a sequence... even if the source used the scalar shorthand").
func IsSequence(key string) bool {
	ks, ok := Registry[key]
	if !ok {
		return false
	}
	switch ks.Kind {
	case KindStringSeq, KindCheckSeq, KindLinkSeq:
		return true
	default:
		return false
	}
}
