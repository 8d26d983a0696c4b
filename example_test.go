package fixwire_test

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/fixwire/fixwire"
	"github.com/fixwire/fixwire/wire"
)

// Example parses a small new-order message and reads typed field values.
func Example() {
	// Assemble a well-formed message. On the wire the delimiter is the SOH
	// byte (0x01) after every tag=value pair.
	soh := "\x01"
	body := strings.Join([]string{"35=D", "11=ORD-1", "55=IBM", "44=100.25", "54=1"}, soh) + soh
	head := "8=FIX.4.4" + soh + "9=" + strconv.Itoa(len(body)) + soh
	sum := wire.Checksum([]byte(head + body))
	raw := []byte(head + body + fmt.Sprintf("10=%03d", sum) + soh)

	parser := fixwire.New()
	msg, err := parser.Parse(raw)
	if err != nil {
		log.Fatal(err)
	}

	symbol, _ := msg.GetString(55)
	price, _ := msg.GetFloat(44)
	side, _ := msg.GetChar(54)

	fmt.Println("type:", msg.MsgType())
	fmt.Println("fields:", msg.NumFields())
	fmt.Println("symbol:", symbol)
	fmt.Println("price:", price)
	fmt.Println("side:", string(side))
	// Output:
	// type: D
	// fields: 8
	// symbol: IBM
	// price: 100.25
	// side: 1
}
