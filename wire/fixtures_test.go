package wire

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fixwire/fixwire/registry"
)

const soh = "\x01"

// fixMessage assembles a well-formed message from body fields (the 35 field
// first), computing the body length and checksum the way a sender would.
func fixMessage(bodyFields ...string) []byte {
	body := strings.Join(bodyFields, soh) + soh
	head := "8=FIX.4.4" + soh + "9=" + strconv.Itoa(len(body)) + soh
	sum := Checksum([]byte(head + body))
	return []byte(head + body + fmt.Sprintf("10=%03d", sum) + soh)
}

// execReportFixture is a 29-field execution report: 26 header/body fields
// plus the appended checksum field plus tags 8 and 9.
func execReportFixture() []byte {
	return fixMessage(
		"35=8",
		"34=215",
		"49=BROKER",
		"56=CLIENT",
		"52=20240312-14:05:52.113",
		"37=10042",
		"11=ORD-7781",
		"17=EXEC-5513",
		"150=F",
		"39=2",
		"55=MSFT",
		"54=1",
		"38=100",
		"44=415.25",
		"59=0",
		"32=100",
		"31=415.25",
		"151=0",
		"14=100",
		"6=415.25",
		"60=20240312-14:05:52",
		"58=Filled",
		"1=ACC-77",
		"40=2",
		"15=USD",
		"21=1",
	)
}

// binaryFixture carries two length-prefixed data fields whose payloads embed
// the delimiter byte and an equal sign. 9 fields in total.
func binaryFixture() []byte {
	rawData := "ab\x01=c\x01"  // 6 bytes, tag 95/96
	secureData := "\x01\x01=x" // 4 bytes, tag 90/91
	return fixMessage(
		"35=D",
		"95=6",
		"96="+rawData,
		"90=4",
		"91="+secureData,
		"34=1",
	)
}

func testRegistry() *registry.Registry {
	return registry.NewRegistry()
}
