package inventory

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/armory/internal/game/dice"
)

// BuildOptions carries the collaborators a weapon instance needs.
type BuildOptions struct {
	// Roller rolls damage. Required.
	Roller *dice.Roller
	// OnStrike receives every strike the weapon produces. May be nil.
	OnStrike StrikeFunc
	// Logger receives debug output. nil uses zap.NewNop().
	Logger *zap.Logger
}

// weaponCore holds the state shared by every variant.
type weaponCore struct {
	id       string
	def      *WeaponDef
	damage   dice.Expression
	single   bool
	roller   *dice.Roller
	onStrike StrikeFunc
	logger   *zap.Logger
}

func newWeaponCore(def *WeaponDef, opts BuildOptions) (weaponCore, error) {
	if def == nil {
		return weaponCore{}, errors.New("inventory: def must not be nil")
	}
	if opts.Roller == nil {
		return weaponCore{}, errors.New("inventory: BuildOptions.Roller must not be nil")
	}
	if err := def.Validate(); err != nil {
		return weaponCore{}, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.NewString()
	return weaponCore{
		id:       id,
		def:      def,
		damage:   dice.MustParse(def.DamageDice),
		single:   def.SingleFire,
		roller:   opts.Roller,
		onStrike: opts.OnStrike,
		logger:   logger.With(zap.String("weapon", def.ID), zap.String("instance", id)),
	}, nil
}

func (c *weaponCore) ID() string                { return c.id }
func (c *weaponCore) Name() string              { return c.def.Name }
func (c *weaponCore) SingleFire() bool          { return c.single }
func (c *weaponCore) SetSingleFire(single bool) { c.single = single }

func (c *weaponCore) strike(direction Vec3) {
	s := Strike{
		WeaponID:   c.id,
		WeaponName: c.def.Name,
		Direction:  direction,
		Damage:     c.roller.Roll(c.damage),
	}
	c.logger.Debug("strike", zap.Int("damage", s.Damage.Total()))
	if c.onStrike != nil {
		c.onStrike(s)
	}
}

// MeleeWeapon strikes once per attack. Its single-fire flag is stored but
// does not change how it attacks.
type MeleeWeapon struct {
	weaponCore
}

// NewMeleeWeapon builds a MeleeWeapon from def.
//
// Precondition: def.Kind == WeaponKindMelee.
func NewMeleeWeapon(def *WeaponDef, opts BuildOptions) (*MeleeWeapon, error) {
	core, err := newWeaponCore(def, opts)
	if err != nil {
		return nil, err
	}
	if def.Kind != WeaponKindMelee {
		return nil, fmt.Errorf("inventory: NewMeleeWeapon: %q is a %s", def.ID, def.Kind)
	}
	return &MeleeWeapon{weaponCore: core}, nil
}

// Attack rolls damage once along direction.
func (m *MeleeWeapon) Attack(direction Vec3) {
	m.strike(direction)
}

// Firearm fires rounds from a Magazine and reloads over a number of frames.
//
// Invariant: remaining > 0 only while reloading.
type Firearm struct {
	weaponCore
	mag          *Magazine
	reloading    bool
	remaining    int
	reloadFrames int
	burst        int
}

// NewFirearm builds a fully loaded Firearm from def.
//
// Precondition: def.Kind == WeaponKindFirearm.
func NewFirearm(def *WeaponDef, opts BuildOptions) (*Firearm, error) {
	core, err := newWeaponCore(def, opts)
	if err != nil {
		return nil, err
	}
	if def.Kind != WeaponKindFirearm {
		return nil, fmt.Errorf("inventory: NewFirearm: %q is a %s", def.ID, def.Kind)
	}
	return &Firearm{
		weaponCore:   core,
		mag:          NewMagazine(def.MagazineCapacity),
		reloadFrames: def.ReloadFrames,
		burst:        def.RoundsPerBurst(),
	}, nil
}

// Attack fires one round in single-fire mode, or up to a burst of rounds
// otherwise. It does nothing while reloading. Emptying the magazine starts a reload.
func (f *Firearm) Attack(direction Vec3) {
	if f.reloading {
		f.logger.Debug("attack ignored while reloading", zap.Int("frames_left", f.remaining))
		return
	}
	rounds := f.burst
	if f.single {
		rounds = 1
	}
	fired := f.mag.Draw(rounds)
	for range fired {
		f.strike(direction)
	}
	if f.mag.IsEmpty() {
		f.startReload()
	}
}

// Reloading reports whether a reload is in progress.
func (f *Firearm) Reloading() bool { return f.reloading }

// SetReloading starts a reload when true. When false it cancels any
// reload in progress without refilling the magazine.
func (f *Firearm) SetReloading(reloading bool) {
	if reloading {
		f.startReload()
		return
	}
	if f.reloading {
		f.logger.Debug("reload cancelled", zap.Int("frames_left", f.remaining))
	}
	f.reloading = false
	f.remaining = 0
}

// Reload starts a reload unless one is running or the magazine is full.
//
// Postcondition: returns true iff a reload was started.
func (f *Firearm) Reload() bool {
	if f.reloading || f.mag.IsFull() {
		return false
	}
	f.startReload()
	return true
}

// Tick advances an in-progress reload by one frame.
func (f *Firearm) Tick() {
	if !f.reloading {
		return
	}
	f.remaining--
	if f.remaining <= 0 {
		f.finishReload()
	}
}

// Loaded returns the rounds currently in the magazine.
func (f *Firearm) Loaded() int { return f.mag.Loaded }

// Capacity returns the magazine capacity.
func (f *Firearm) Capacity() int { return f.mag.Capacity }

func (f *Firearm) startReload() {
	f.reloading = true
	f.remaining = f.reloadFrames
	f.logger.Debug("reload started", zap.Int("frames", f.reloadFrames))
	if f.remaining <= 0 {
		f.finishReload()
	}
}

func (f *Firearm) finishReload() {
	added := f.mag.Refill()
	f.reloading = false
	f.remaining = 0
	f.logger.Debug("reload finished", zap.Int("added", added), zap.Int("loaded", f.mag.Loaded))
}

// NewWeapon builds the variant selected by def.Kind.
//
// Postcondition: returns a Weapon with a fresh instance ID, or a non-nil error.
func NewWeapon(def *WeaponDef, opts BuildOptions) (Weapon, error) {
	if def == nil {
		return nil, errors.New("inventory: NewWeapon: def must not be nil")
	}
	switch def.Kind {
	case WeaponKindFirearm:
		f, err := NewFirearm(def, opts)
		if err != nil {
			return nil, err
		}
		return f, nil
	case WeaponKindMelee:
		m, err := NewMeleeWeapon(def, opts)
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("inventory: NewWeapon: unknown kind %q for %q", def.Kind, def.ID)
	}
}
