// Package runtime provides the backends that move images between registries.
//
// Three implementations of types.Runtime are available:
//   - CLI: Drives an external container engine binary (docker or podman) with login, pull, tag, push and rmi.
//   - Engine: Talks to the Docker Engine API directly through the docker/docker client.
//   - Direct: Copies images registry to registry with go-containerregistry, without a daemon or local disk.
//
// Usage example:
//
//	rt, err := runtime.New(runtime.Options{Kind: runtime.KindCLI, Binary: "docker"})
//	if err != nil {
//	    return err
//	}
//	_ = rt.Login(ctx, source)
//	_ = rt.Pull(ctx, ref)
//
// Every backend reports failures as wrapped errors; nothing is silently discarded.
package runtime
