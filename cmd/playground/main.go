package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/pdcgo/treasury_service/treasury_iface"
)

// scratch client for poking a locally running service
func main() {
	pay := &treasury_iface.CashTransferRequest{
		Direction: "safe_to_registry",
		Amount:    150_000,
		Notes:     "manual drawer topup from playground",
	}

	raw, err := json.Marshal(pay)
	if err != nil {
		panic(err)
	}

	url := "http://localhost:8081" + treasury_iface.TransferServiceCashTransferProcedure
	log.Println("POST", url)

	res, err := http.Post(url, "application/json", bytes.NewBuffer(raw))
	if err != nil {
		panic(err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		panic(err)
	}

	log.Println(res.Status, string(body))
}
