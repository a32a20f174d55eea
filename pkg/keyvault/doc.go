// Package keyvault copies secrets between Azure Key Vaults.
//
// A Copier lists the secret names of a source Store, drops the excluded ones and those not
// matching a suffix, then reads every remaining secret and writes it to the destination
// Store. VaultStore implements Store with the Azure SDK; credentials come from the
// default Azure credential chain (environment, workload identity, managed identity or
// the Azure CLI).
package keyvault
