package types

import (
	"encoding/json"
	"strings"
)

// Side selects one of the two tokens of a pool
type Side uint8

const (
	SideA Side = iota
	SideB
)

// ParseSide parses "A" or "B" (case-insensitive)
func ParseSide(s string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return SideA, nil
	case "B":
		return SideB, nil
	}
	return 0, ErrInvalidSide.Wrapf("%q", s)
}

func (s Side) String() string {
	if s == SideB {
		return "B"
	}
	return "A"
}

// Validate returns an error for values other than SideA and SideB
func (s Side) Validate() error {
	if s != SideA && s != SideB {
		return ErrInvalidSide.Wrapf("%d", uint8(s))
	}
	return nil
}

func (s Side) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Side) UnmarshalJSON(bz []byte) error {
	var str string
	if err := json.Unmarshal(bz, &str); err != nil {
		return err
	}
	parsed, err := ParseSide(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Direction is the direction of a swap
type Direction uint8

const (
	AtoB Direction = iota
	BtoA
)

// ParseDirection parses "AtoB" / "BtoA" (also "a_to_b", "b_to_a")
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", "")) {
	case "atob":
		return AtoB, nil
	case "btoa":
		return BtoA, nil
	}
	return 0, ErrInvalidSide.Wrapf("unknown swap direction %q", s)
}

func (d Direction) String() string {
	if d == BtoA {
		return "BtoA"
	}
	return "AtoB"
}

// In returns the side that receives the input token
func (d Direction) In() Side {
	if d == BtoA {
		return SideB
	}
	return SideA
}

// Out returns the side that pays the output token
func (d Direction) Out() Side {
	if d == BtoA {
		return SideA
	}
	return SideB
}

func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Direction) UnmarshalJSON(bz []byte) error {
	var str string
	if err := json.Unmarshal(bz, &str); err != nil {
		return err
	}
	parsed, err := ParseDirection(str)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
