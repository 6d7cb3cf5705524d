package sysfs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ErrUEventFormat is returned for uevent lines that are not KEY=VALUE.
var ErrUEventFormat = errors.New("malformed uevent")

const (
	ueventPrefix       = "POWER_SUPPLY_"
	ueventDevType      = "DEVTYPE"
	powerSupplyDevType = "power_supply"
)

// ParseUEvent reads KEY=VALUE lines. Blank lines are skipped and later keys
// overwrite earlier ones.
func ParseUEvent(r io.Reader) (map[string]string, error) {
	ret := map[string]string{}
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		k = strings.TrimSpace(k)
		if !ok || !isWord(k) {
			return nil, fmt.Errorf("%w: line %d: %q", ErrUEventFormat, n, line)
		}
		ret[k] = strings.TrimSpace(v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ret, nil
}

// UEventAttributes extracts power_supply attributes from a uevent map: keys lose
// their POWER_SUPPLY_ prefix, matched case-insensitively, and are lower
// cased. ok is false when the uevent belongs to another device type.
func UEventAttributes(uevent map[string]string) (attrs map[string]string, ok bool) {
	if devType, found := uevent[ueventDevType]; found && devType != powerSupplyDevType {
		return nil, false
	}
	attrs = map[string]string{}
	for _, k := range sortedKeys(uevent) {
		if len(k) < len(ueventPrefix) || !strings.EqualFold(k[:len(ueventPrefix)], ueventPrefix) {
			continue
		}
		attrs[strings.ToLower(k[len(ueventPrefix):])] = uevent[k]
	}
	return attrs, true
}

// Merge adds fallback values for keys missing from primary.
func Merge(primary, fallback map[string]string) map[string]string {
	ret := make(map[string]string, len(primary)+len(fallback))
	for k, v := range fallback {
		ret[k] = v
	}
	for k, v := range primary {
		ret[k] = v
	}
	return ret
}

func isWord(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !(c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
			return false
		}
	}
	return true
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
