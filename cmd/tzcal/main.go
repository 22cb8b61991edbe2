// Command tzcal prints calendar fields and formatted layouts for the
// current instant, or for a given Unix timestamp, in a named zone.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/gotimezone/chrono"
	"github.com/gotimezone/chrono/zoneinfo"
)

var zoneFlag = flag.String("zone", "", "IANA zone name to load (default: TZ environment variable, then /etc/localtime)")

func main() {
	if err := run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()
	args := flag.Args()

	loc, err := resolveLocation()
	if err != nil {
		return err
	}

	var i chrono.Instant
	switch len(args) {
	case 0:
		i = chrono.Now(loc)
	case 1:
		sec, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("parsing Unix timestamp %q: %w", args[0], err)
		}
		i = chrono.Unix(sec, 0, loc)
	default:
		return fmt.Errorf("Usage: tzcal [-zone NAME] [unix-seconds]\n")
	}

	printInstant(loc, i)
	return nil
}

func resolveLocation() (*chrono.Location, error) {
	if *zoneFlag == "" {
		return zoneinfo.LoadLocal(), nil
	}
	return zoneinfo.LoadLocation(*zoneFlag)
}

func printInstant(loc *chrono.Location, i chrono.Instant) {
	year, month, day := i.Date()
	hour, min, sec := i.Clock()
	isoYear, isoWeek := i.ISOWeek()

	fmt.Printf("Location    = %s\n", loc)
	fmt.Printf("Date        = %04d-%02d-%02d\n", year, int(month), day)
	fmt.Printf("Time        = %02d:%02d:%02d\n", hour, min, sec)
	fmt.Printf("Weekday     = %s\n", i.Weekday())
	fmt.Printf("YearDay     = %d\n", i.YearDay())
	fmt.Printf("ISOWeek     = %d-W%02d\n", isoYear, isoWeek)
	fmt.Printf("UTC offset  = %s\n", i.Format("-0700"))
	fmt.Printf("RFC3339     = %s\n", i.Format(chrono.RFC3339))
	fmt.Printf("UnixDate    = %s\n", i.Format(chrono.UnixDate))
	fmt.Printf("Kitchen     = %s\n", i.Format(chrono.Kitchen))
}
