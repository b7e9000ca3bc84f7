package main

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"io"
	"os"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/urfave/cli/v2"

	"github.com/zkparams/signature-gen/circuits"
	"github.com/zkparams/signature-gen/format"
	"github.com/zkparams/signature-gen/logger"
	"github.com/zkparams/signature-gen/siggen"
	"github.com/zkparams/signature-gen/utils"
)

var commands = []*cli.Command{
	{
		Name:  "generate",
		Usage: "Generate signature parameters for a message",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "msg",
				Aliases:  []string{"m"},
				Usage:    "Message to sign",
				Required: true,
			},
			&cli.BoolFlag{
				Name:    "toml",
				Aliases: []string{"t"},
				Usage:   "Print output in TOML format",
			},
			&cli.BoolFlag{
				Name:    "pss",
				Aliases: []string{"p"},
				Usage:   "Use RSA PSS",
			},
		},
		Action: GenerateParams,
	},
	{
		Name:  "compile",
		Usage: "Compile the signature check circuit",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "Output path for the compiled circuit",
				Required: true,
			},
		},
		Action: CompileCircuit,
	},
	{
		Name:  "setup",
		Usage: "Run the setup ceremony",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "circuit",
				Aliases:  []string{"c"},
				Usage:    "Path to the circuit file",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "proving-key",
				Aliases:  []string{"pk"},
				Usage:    "Output path for the proving key",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "verification-key",
				Aliases:  []string{"vk"},
				Usage:    "Output path for the verification key",
				Required: true,
			},
		},
		Action: SetupCircuit,
	},
	{
		Name:  "prove",
		Usage: "Generate parameters for a message and prove the signature check",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "circuit",
				Aliases:  []string{"c"},
				Usage:    "Path to the circuit file",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "proving-key",
				Aliases:  []string{"pk"},
				Usage:    "Path to the proving key",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "msg",
				Aliases:  []string{"m"},
				Usage:    "Message to sign (PKCS#1 v1.5 only)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "Output path for the proof file",
				Required: true,
			},
		},
		Action: ProveSigCheck,
	},
}

func main() {
	app := &cli.App{
		Name:     "signature-gen",
		Usage:    "RSA signature parameter generator for 120-bit bignum circuits",
		Commands: commands,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func GenerateParams(cCtx *cli.Context) error {
	padding := siggen.PaddingPKCS1v15
	if cCtx.Bool("pss") {
		padding = siggen.PaddingPSS
	}

	params, err := siggen.Generate(rand.Reader, cCtx.String("msg"), padding)
	if err != nil {
		return err
	}

	layout := format.LayoutPlain
	if cCtx.Bool("toml") {
		layout = format.LayoutTOML
	}

	return format.Render(os.Stdout, params, layout)
}

func CompileCircuit(cCtx *cli.Context) error {
	log := logger.Logger()

	log.Info().Msg("compiling signature check circuit")
	cs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &circuits.SigCheckCircuit{})
	if err != nil {
		return fmt.Errorf("failed to compile circuit: %w", err)
	}
	log.Info().Int("constraints", cs.GetNbConstraints()).Msg("circuit compiled")

	outputPath := cCtx.String("output")
	if err := writeArtifact(outputPath, cs); err != nil {
		return err
	}
	log.Info().Str("path", outputPath).Msg("wrote compiled circuit")

	return nil
}

func SetupCircuit(cCtx *cli.Context) error {
	log := logger.Logger()

	circuit, err := os.ReadFile(cCtx.String("circuit"))
	if err != nil {
		return fmt.Errorf("failed to read circuit file: %w", err)
	}
	cs := groth16.NewCS(ecc.BN254)
	if _, err := cs.ReadFrom(bytes.NewReader(circuit)); err != nil {
		return fmt.Errorf("failed to parse circuit: %w", err)
	}

	log.Info().Msg("running setup ceremony")
	pk, vk, err := groth16.Setup(cs)
	if err != nil {
		return fmt.Errorf("failed to setup circuit: %w", err)
	}

	pkPath := cCtx.String("proving-key")
	if err := writeArtifact(pkPath, pk); err != nil {
		return err
	}
	log.Info().Str("path", pkPath).Msg("wrote proving key")

	vkPath := cCtx.String("verification-key")
	if err := writeArtifact(vkPath, vk); err != nil {
		return err
	}
	log.Info().Str("path", vkPath).Msg("wrote verification key")

	return nil
}

func ProveSigCheck(cCtx *cli.Context) error {
	log := logger.Logger()

	// The in-circuit check covers the deterministic padding scheme only.
	log.Info().Msg("generating signature parameters")
	params, err := siggen.Generate(rand.Reader, cCtx.String("msg"), siggen.PaddingPKCS1v15)
	if err != nil {
		return err
	}

	w, err := utils.SigCheckWitness(params)
	if err != nil {
		return err
	}

	circuit, err := os.ReadFile(cCtx.String("circuit"))
	if err != nil {
		return fmt.Errorf("failed to read circuit file: %w", err)
	}
	cs := groth16.NewCS(ecc.BN254)
	if _, err := cs.ReadFrom(bytes.NewReader(circuit)); err != nil {
		return fmt.Errorf("failed to parse circuit: %w", err)
	}

	pkBytes, err := os.ReadFile(cCtx.String("proving-key"))
	if err != nil {
		return fmt.Errorf("failed to read proving key file: %w", err)
	}
	pk := groth16.NewProvingKey(ecc.BN254)
	if _, err := pk.ReadFrom(bytes.NewReader(pkBytes)); err != nil {
		return fmt.Errorf("failed to parse proving key: %w", err)
	}

	log.Info().Msg("generating proof")
	proof, err := groth16.Prove(cs, pk, w)
	if err != nil {
		return fmt.Errorf("failed to generate proof: %w", err)
	}

	proofPath := cCtx.String("output")
	if err := writeArtifact(proofPath, proof); err != nil {
		return err
	}
	log.Info().Str("path", proofPath).Msg("wrote proof")

	return nil
}

func writeArtifact(path string, artifact io.WriterTo) error {
	buf := bytes.NewBuffer(nil)
	if _, err := artifact.WriteTo(buf); err != nil {
		return fmt.Errorf("failed to serialize artifact: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return nil
}
