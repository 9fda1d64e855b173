package bencode_test

import (
	"fmt"
	"log"

	"github.com/torrentclient/torrent/bencode"
)

func Example() {
	d := bencode.NewDict()
	d.Set("q", bencode.Bytes("ping"))
	d.Set("a", bencode.List{bencode.Int(1), bencode.Int(-2)})

	// Encode
	data, err := bencode.Marshal(d)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("encoded: %s\n", data)
	canonical, err := bencode.MarshalCanonical(d)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("canonical: %s\n", canonical)

	// Decode
	v, err := bencode.Decode(data)
	if err != nil {
		log.Fatal(err)
	}
	decoded, err := bencode.AsDict(v)
	if err != nil {
		log.Fatal(err)
	}
	q, _ := decoded.Text("q")
	fmt.Printf("decoded: %v q=%s\n", decoded.Keys(), q)
	// Output:
	// encoded: d1:q4:ping1:ali1ei-2eee
	// canonical: d1:ali1ei-2ee1:q4:pinge
	// decoded: [q a] q=ping
}
