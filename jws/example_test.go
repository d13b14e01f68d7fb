package jws_test

import (
	"encoding/base64"
	"fmt"

	"github.com/spinlockirqsave/libjwt/jws"
)

func Example() {
	sig, err := jws.Sign(jws.ALG_HS256, []byte("secret"), []byte("hello, world"))
	if err != nil {
		panic(err)
	}

	fmt.Println(base64.RawURLEncoding.EncodeToString(sig))

	if err := jws.Verify(jws.ALG_HS256, []byte("secret"), []byte("hello, world"), sig); err != nil {
		panic(err)
	}

	// Output:
	// cLVE7E3Y71-ng0_laMdt9fPPdbb93vE9eeJCjoda21s
}
