package main

import (
	"fmt"

	"copt/engine/actors"
	"github.com/davecgh/go-spew/spew"
	"github.com/eiannone/keyboard"
)

// cliListener is a cheap and nasty way to look at the ledger while it runs. It listens for keypresses and executes commands.
func cliListener(interrupt chan struct{}) {
	fmt.Println("VIEW CURRENT STATE:\nr: residents\nb: balances\nl: latest block\nB: all blocks\nv: verify chain\ns: save now\nc: config\nq: to quit")
	for {
		r, k, err := keyboard.GetSingleKey()
		if err != nil {
			fmt.Println(err)
			close(interrupt)
			return
		}
		str := string(r)
		switch str {
		default:
			if k == keyboard.KeyEnter {
				fmt.Println("\n-----------------------------------")
				break
			}
			if r == 0 {
				break
			}
			fmt.Println("Key " + str + " is not bound to anything. See cliListener.go for more.")
		case "r":
			for _, resident := range current.Residents() {
				fmt.Printf("\nID: %d Name: %s Wallet: %s\n", resident.ID, resident.Name, resident.Wallet)
			}
		case "b":
			for _, line := range current.Summary() {
				fmt.Printf("\nID: %d Name: %s Balance: %d\n", line.ID, line.Name, line.Balance)
			}
		case "l":
			chain := current.Chain()
			spew.Dump(chain[len(chain)-1])
		case "B":
			for _, block := range current.Chain() {
				spew.Dump(block)
			}
		case "v":
			if err := current.VerifyChain(); err != nil {
				fmt.Printf("\nCHAIN IS BROKEN: %s\n", err.Error())
				break
			}
			fmt.Println("\nchain is intact")
		case "s":
			if err := current.Save(); err != nil {
				fmt.Println(err)
			}
		case "c":
			fmt.Println("CURRENT CONFIG")
			for k, v := range actors.MakeOrGetConfig().AllSettings() {
				fmt.Printf("\nKey: %s; Value: %v\n", k, v)
			}
		case "q":
			close(interrupt)
			return
		}
	}
}
