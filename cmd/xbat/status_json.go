package main

import (
	"encoding/json"
	"io"

	"github.com/charlie0129/xbat/pkg/powerinfo"
)

type statusJSON struct {
	powerinfo.BatteryInfo
	Status string `json:"status"`
}

type statusListJSON struct {
	Batteries []statusJSON `json:"batteries"`
	// Details is omitted unless --details is given.
	Details string `json:"details,omitempty"`
}

type statusPrimaryJSON struct {
	statusJSON
	Details string `json:"details,omitempty"`
}

func toStatusJSON(info powerinfo.BatteryInfo) statusJSON {
	return statusJSON{BatteryInfo: info, Status: info.ChargeStatus()}
}

func printStatusJSON(w io.Writer, infos []powerinfo.BatteryInfo, all bool, details string) error {
	var out any
	if all {
		list := statusListJSON{Batteries: []statusJSON{}, Details: details}
		for _, info := range infos {
			list.Batteries = append(list.Batteries, toStatusJSON(info))
		}
		out = list
	} else {
		out = statusPrimaryJSON{statusJSON: toStatusJSON(infos[0]), Details: details}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
