package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/Alia5/keygrab/keys"
	"github.com/Alia5/keygrab/native"
)

// Keys prints the key name table: canonical name, native key, macOS virtual
// key code and the canonical code that virtual key code yields on the raw
// path.
type Keys struct {
	Only   []string `help:"Only list these keys (names as accepted by --mapped)" sep:","`
	Format string   `help:"Output format" enum:"table,json" default:"table" short:"f"`
}

type keyRow struct {
	Code    uint16 `json:"code"`
	Name    string `json:"name"`
	Native  string `json:"native,omitempty"`
	Raw     *int   `json:"raw,omitempty"`
	RawPath string `json:"rawPath,omitempty"`
}

func (k *Keys) Run() error {
	return k.write(os.Stdout, term.IsTerminal(int(os.Stdout.Fd())))
}

func (k *Keys) rows() ([]keyRow, error) {
	codes := keys.All()
	if len(k.Only) > 0 {
		codes = codes[:0]
		for _, name := range k.Only {
			c, err := keys.ParseOsCode(name)
			if err != nil {
				return nil, err
			}
			codes = append(codes, c)
		}
	}

	rows := make([]keyRow, 0, len(codes))
	for _, c := range codes {
		row := keyRow{Code: uint16(c), Name: c.String()}
		if nk := native.ToNative(c); nk != native.KeyUnknownSentinel {
			row.Native = nk.String()
			if raw, ok := native.RawScanCode(nk); ok {
				v := int(raw)
				row.Raw = &v
				if rc, ok := native.CanonicalFromRaw(raw); ok {
					row.RawPath = rc.String()
				}
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// write renders an aligned table on a terminal and tab-separated values
// otherwise.
func (k *Keys) write(w io.Writer, tty bool) error {
	rows, err := k.rows()
	if err != nil {
		return err
	}
	if k.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	out := w
	var tw *tabwriter.Writer
	if tty {
		tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		out = tw
	}
	fmt.Fprintln(out, "CODE\tNAME\tNATIVE\tRAW\tRAW PATH")
	for _, r := range rows {
		nk, raw, rawPath := "-", "-", "-"
		if r.Native != "" {
			nk = r.Native
		}
		if r.Raw != nil {
			raw = strconv.Itoa(*r.Raw)
		}
		if r.RawPath != "" {
			rawPath = r.RawPath
		}
		fmt.Fprintf(out, "%d\t%s\t%s\t%s\t%s\n", r.Code, r.Name, nk, raw, rawPath)
	}
	if tw != nil {
		return tw.Flush()
	}
	return nil
}
