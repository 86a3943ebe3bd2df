package sideimage

import (
	"math/rand"
	"strings"
	"time"
)

// Names is the illustration pool served from the public images directory.
var Names = []string{
	"ArcherQueen_LNY_2025_Skin.png",
	"BK_CosmicCurse_f11_4k.png",
	"Grand_Warden_LNY2025_Skin_01.png",
	"GW_CosmicCurse_f01_4k.png",
	"hero_hall_lvl_06.png",
	"Hero_Minion_Prince_03_withShadow.png",
	"LNY25_Monk_Statue_Marketing.png",
	"Mega_Knight_03.png",
	"Pekka_12.png",
	"Prince_03.png",
	"Reine_archer_pekka.png",
	"TH17_HV_04.png",
	"Troop_HV_Golem_14.png",
	"Troop_HV_Hog_Rider_levell_14.png",
}

// Resolve turns a bare filename into its public URL. Already-absolute paths
// pass through.
func Resolve(name string) string {
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "/") {
		return name
	}
	return "/images/" + name
}

// NormalizeURL maps the image reference stored on a question to a displayable
// URL. Legacy backend prefixes (/uploads/, /assets/) are rewritten to the
// public images directory; absolute and data URLs pass through.
func NormalizeURL(raw string) string {
	switch {
	case raw == "":
		return ""
	case strings.HasPrefix(raw, "http://"), strings.HasPrefix(raw, "https://"):
		return raw
	case strings.HasPrefix(raw, "data:"):
		return raw
	case strings.HasPrefix(raw, "/uploads/"), strings.HasPrefix(raw, "/assets/"):
		parts := strings.Split(raw, "/")
		return "/images/" + parts[len(parts)-1]
	case strings.HasPrefix(raw, "/"):
		return raw
	default:
		return "/images/" + raw
	}
}

// Picker selects decoration images, avoiding back-to-back repeats.
type Picker struct {
	pool []string
	rnd  *rand.Rand
}

// NewPicker uses the default pool. A nil rnd seeds from the clock.
func NewPicker(rnd *rand.Rand) *Picker {
	return NewPickerWithPool(Names, rnd)
}

func NewPickerWithPool(pool []string, rnd *rand.Rand) *Picker {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Picker{pool: pool, rnd: rnd}
}

// PickTwo returns two side-image URLs. The two picks are always distinct when
// the pool holds at least two names, and the previously returned pair is
// excluded when the pool is large enough to allow it.
func (p *Picker) PickTwo(prevLeft, prevRight string) (string, string) {
	if len(p.pool) == 0 {
		return "", ""
	}

	pool := make([]string, 0, len(p.pool))
	for _, name := range p.pool {
		if url := Resolve(name); url != prevLeft && url != prevRight {
			pool = append(pool, name)
		}
	}
	if len(pool) < 2 {
		pool = p.pool
	}

	left := pool[p.rnd.Intn(len(pool))]
	rest := make([]string, 0, len(pool))
	for _, name := range pool {
		if name != left {
			rest = append(rest, name)
		}
	}
	if len(rest) == 0 {
		return Resolve(left), Resolve(left)
	}
	right := rest[p.rnd.Intn(len(rest))]
	return Resolve(left), Resolve(right)
}
